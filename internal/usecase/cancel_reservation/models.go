package cancel_reservation

// Request отмена записи
type Request struct {
	CenterID int64
	ID       int64
	Reason   *string
}
