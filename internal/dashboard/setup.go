package dashboard

import (
	"log"

	"github.com/sangamops/mela-backend/internal/db"
)

// notifyFunc fires a payload-free notification on <table>_changes whenever a
// statement touches the table. Consumers re-fetch; they never trust a
// payload.
const notifyFunc = `
CREATE OR REPLACE FUNCTION notify_collection_changed() RETURNS trigger AS $$
BEGIN
	PERFORM pg_notify(TG_TABLE_NAME || '_changes', '');
	RETURN NULL;
END;
$$ LANGUAGE plpgsql;`

func Init() {
	if err := db.DB.AutoMigrate(&ZoneRow{}, &UnitRow{}, &DeviceRow{}, &AlertRow{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}

	if err := db.DB.Exec(notifyFunc).Error; err != nil {
		log.Fatal("Failed to create notify function: ", err)
	}

	for _, table := range allCollections {
		if err := db.DB.Exec(
			`DROP TRIGGER IF EXISTS ` + table + `_notify ON ` + table).Error; err != nil {
			log.Fatal("Failed to drop trigger on "+table+": ", err)
		}
		if err := db.DB.Exec(
			`CREATE TRIGGER ` + table + `_notify
			AFTER INSERT OR UPDATE OR DELETE ON ` + table + `
			FOR EACH STATEMENT EXECUTE FUNCTION notify_collection_changed()`).Error; err != nil {
			log.Fatal("Failed to create trigger on "+table+": ", err)
		}
	}
}
