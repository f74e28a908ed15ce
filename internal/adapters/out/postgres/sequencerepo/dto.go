// Package sequencerepo persists the sharded order-number counters.
// One row per shard key; the only mutations are the atomic insert-or-increment
// behind number generation and the administrative cleanup delete.
package sequencerepo

// SequenceDTO represents one counter shard row.
// Key is YYYYMMDD under daily numbering granularity or YYYYMMDDHH under
// hourly; CurrentValue is the last order number handed out for that shard.
type SequenceDTO struct {
	Key          string `gorm:"type:varchar(10);primaryKey"`
	CurrentValue int    `gorm:"not null"`
}

// TableName specifies the database table name for counter rows.
func (SequenceDTO) TableName() string {
	return "order_number_sequences"
}
