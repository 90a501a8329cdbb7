package device

// FilterWheelDevice is the IFilterWheelV3 contract. Position is -1 while
// the wheel is moving.
type FilterWheelDevice interface {
	Device

	FocusOffsets() ([]int32, error)
	Names() ([]string, error)
	Position() (int32, error)
	SetPosition(position int32) error
}
