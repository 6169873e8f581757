package dashboard

import "time"

// avgResponseTimePlaceholder stands in for real response-time telemetry,
// which the store does not record yet.
const avgResponseTimePlaceholder = 4.2

// ComputeStats derives the pilgrim counters from the latest snapshots.
// previousPeak keeps PeakToday monotone within a session even when the
// current headcount drops.
func ComputeStats(zones []CrowdZone, alerts []Alert, deviceCount, previousPeak int, now time.Time) PilgrimStats {
	currentInArea := 0
	for _, zone := range zones {
		currentInArea += zone.CurrentCapacity
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	active := 0
	resolvedToday := 0
	for _, alert := range alerts {
		if alert.IsActive {
			active++
			continue
		}
		if alert.ResolvedAt != nil && !alert.ResolvedAt.Before(dayStart) {
			resolvedToday++
		}
	}

	peak := previousPeak
	if currentInArea > peak {
		peak = currentInArea
	}

	return PilgrimStats{
		TotalPilgrims:     deviceCount,
		CurrentInArea:     currentInArea,
		PeakToday:         peak,
		AvgResponseTime:   avgResponseTimePlaceholder,
		ActiveIncidents:   active,
		ResolvedIncidents: resolvedToday,
	}
}

// CapacityPercent returns the occupancy percentage for display. A zone with
// maxCapacity 0 reads as 0%, never NaN or Inf.
func CapacityPercent(current, max int) int {
	if max <= 0 {
		return 0
	}
	return int(float64(current) / float64(max) * 100)
}
