package orderrepo

import (
	"fmt"

	"gorm.io/gorm"
)

// queuePositionConstraint keeps positions unique at commit time. It is
// deferred so a batch shift may pass through duplicates inside a transaction.
const queuePositionConstraint = "orders_queue_position_key"

// Migrate creates the orders table and the deferred unique constraint on
// queue_position. It is safe to run more than once.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&OrderDTO{}); err != nil {
		return fmt.Errorf("migrate orders: %w", err)
	}

	var exists bool
	if err := db.Raw(
		`SELECT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = ?)`, queuePositionConstraint,
	).Scan(&exists).Error; err != nil {
		return fmt.Errorf("inspect constraints: %w", err)
	}
	if exists {
		return nil
	}

	if err := db.Exec(fmt.Sprintf(
		`ALTER TABLE orders ADD CONSTRAINT %s UNIQUE (queue_position) DEFERRABLE INITIALLY DEFERRED`,
		queuePositionConstraint,
	)).Error; err != nil {
		return fmt.Errorf("add %s: %w", queuePositionConstraint, err)
	}
	return nil
}
