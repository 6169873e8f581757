package assistant

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Trigger priority order is load-bearing: an utterance matching several
// keyword sets gets the earliest one's template.
func defaultTriggers() []trigger {
	return []trigger{
		{
			keywords: []string{"crowd", "density"},
			response: Response{
				Content: "**Current Crowd Analysis:**\n\n" +
					"- **Triveni Sangam**: 85% capacity (Critical - implement flow control)\n" +
					"- **Dashashwamedh Ghat**: 72% capacity (Moderate)\n" +
					"- **Manikarnika Ghat**: 45% capacity (Safe)\n\n" +
					"**Recommendations:**\n" +
					"Redirect pilgrims from Sangam to Assi Ghat, deploy additional barriers at Gate 1, " +
					"and activate alternate routes via Sector 2.",
				Suggestions: []string{
					"Show evacuation routes",
					"Deploy emergency teams",
					"Send crowd alerts",
					"Weather impact analysis",
				},
			},
		},
		{
			keywords: []string{"emergency", "evacuation"},
			response: Response{
				Content: "**Emergency Evacuation Protocol:**\n\n" +
					"**Immediate Actions:**\n" +
					"1. Sound evacuation alarms in affected sectors\n" +
					"2. Open all emergency gates (Gates 5 & 6)\n" +
					"3. Deploy crowd control barriers\n" +
					"4. Activate PA system in Hindi, English, and local languages\n\n" +
					"**Evacuation Routes:**\n" +
					"- **Route A**: Sangam to Gate 5 (Capacity: 5000/hour)\n" +
					"- **Route B**: Sector 2 to Gate 6 (Capacity: 3000/hour)\n" +
					"- **Route C**: Main Road to Gate 1 (Emergency only)",
				Suggestions: []string{
					"Activate evacuation now",
					"Medical emergency protocol",
					"Contact emergency services",
					"Crowd control measures",
				},
			},
		},
		{
			keywords: []string{"lost", "missing"},
			response: Response{
				Content: "**Lost Pilgrim Protocol:**\n\n" +
					"**Immediate Steps:**\n" +
					"1. Check RFID tracking system for last known location\n" +
					"2. Broadcast announcement in multiple languages\n" +
					"3. Alert Lost & Found centers at both locations\n" +
					"4. Deploy search teams to high-density areas\n\n" +
					"**Family Reunification:**\n" +
					"Use the RFID family linking system, check family meeting points, " +
					"and coordinate with local police.",
				Suggestions: []string{
					"Track RFID device",
					"Broadcast announcement",
					"Deploy search teams",
					"Contact family members",
				},
			},
		},
		{
			keywords: []string{"weather", "rain"},
			response: Response{
				Content: "**Weather Impact Analysis:**\n\n" +
					"**Current Conditions:**\n" +
					"Temperature 26°C, humidity 65%, wind 5 km/h NE, clear skies for the next 6 hours.\n\n" +
					"**Crowd Flow Impact:**\n" +
					"Favorable conditions for outdoor activities; monitor for afternoon heat buildup.\n\n" +
					"**Recommendations:**\n" +
					"Increase water distribution points, ensure shade availability at ghats, " +
					"and monitor elderly pilgrims for heat stress.",
				Suggestions: []string{
					"Setup cooling stations",
					"Increase medical patrols",
					"Water distribution plan",
					"Heat emergency protocol",
				},
			},
		},
		{
			keywords: []string{"medical", "health"},
			response: Response{
				Content: "**Medical Emergency Support:**\n\n" +
					"**Available Resources:**\n" +
					"- **Medical Camp 1**: 15 doctors, 25 nurses (Active)\n" +
					"- **Medical Camp 2**: 12 doctors, 20 nurses (Active)\n" +
					"- **Mobile Units**: 8 ambulances deployed\n" +
					"- **Helicopter**: On standby for critical cases\n\n" +
					"**Quick Response:**\n" +
					"Emergency: 108 | Medical Helpline: +91-9876543210",
				Suggestions: []string{
					"Deploy medical team",
					"Request ambulance",
					"Heat stroke protocol",
					"Elderly assistance",
				},
			},
		},
		{
			keywords: []string{"security", "safety"},
			response: Response{
				Content: "**Security & Safety Status:**\n\n" +
					"**Current Deployment:**\n" +
					"- **Police Posts**: 12 active stations\n" +
					"- **Security Personnel**: 450 officers on duty\n" +
					"- **CCTV Coverage**: 95% area monitored\n" +
					"- **Metal Detectors**: All gates operational\n\n" +
					"**Safety Measures:**\n" +
					"Regular patrol schedules active, crowd monitoring running, " +
					"emergency response teams positioned.",
				Suggestions: []string{
					"Increase patrols",
					"Check CCTV footage",
					"Deploy additional security",
					"Anti-theft measures",
				},
			},
		},
		{
			keywords: []string{"food", "water"},
			response: Response{
				Content: "**Food & Water Management:**\n\n" +
					"**Distribution Points:**\n" +
					"- **Food Courts**: 2 main locations operational\n" +
					"- **Water Stations**: 25 points across all sectors\n" +
					"- **Free Meal Centers**: 8 locations (Langar)\n\n" +
					"**Recommendations:**\n" +
					"Add mobile water tankers near Sangam, increase food court capacity in Sector 2, " +
					"and monitor queue lengths at meal centers.",
				Suggestions: []string{
					"Deploy water tankers",
					"Food safety inspection",
					"Increase meal distribution",
					"Queue management",
				},
			},
		},
	}
}

func defaultFallback() Response {
	return Response{
		Content: "I can help you with various aspects of mela operations:\n\n" +
			"- Crowd density monitoring\n" +
			"- Emergency protocols\n" +
			"- Lost pilgrim assistance\n" +
			"- Weather impact analysis\n" +
			"- Medical emergency support\n" +
			"- Security coordination\n" +
			"- Food & water management\n\n" +
			"Please let me know what specific information or assistance you need!",
		Suggestions: []string{
			"Show current crowd status",
			"Emergency procedures",
			"Weather forecast impact",
			"Medical resources available",
		},
	}
}

type templateFile struct {
	Triggers []struct {
		Keywords    []string `yaml:"keywords"`
		Content     string   `yaml:"content"`
		Suggestions []string `yaml:"suggestions"`
	} `yaml:"triggers"`
	Fallback struct {
		Content     string   `yaml:"content"`
		Suggestions []string `yaml:"suggestions"`
	} `yaml:"fallback"`
}

// LoadTemplates replaces the built-in triggers with ones from a YAML file so
// operators can retune the canned answers without a rebuild. File order is
// the priority order.
func (m *Matcher) LoadTemplates(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read templates: %w", err)
	}

	var file templateFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}
	if len(file.Triggers) == 0 {
		return fmt.Errorf("templates file %s defines no triggers", path)
	}

	triggers := make([]trigger, 0, len(file.Triggers))
	for _, t := range file.Triggers {
		keywords := make([]string, 0, len(t.Keywords))
		for _, kw := range t.Keywords {
			keywords = append(keywords, m.lower.String(kw))
		}
		triggers = append(triggers, trigger{
			keywords: keywords,
			response: Response{Content: t.Content, Suggestions: t.Suggestions},
		})
	}

	m.triggers = triggers
	if file.Fallback.Content != "" {
		m.fallback = Response{
			Content:     file.Fallback.Content,
			Suggestions: file.Fallback.Suggestions,
		}
	}
	return nil
}
