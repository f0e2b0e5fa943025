package migration

import (
	"github.com/MV-Clouds/quickform-payments/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.PlanRegistryModel{},
	}
}
