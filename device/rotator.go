package device

// RotatorDevice is the IRotatorV4 contract. Angles are in degrees.
type RotatorDevice interface {
	Device

	CanReverse() (bool, error)
	IsMoving() (bool, error)
	MechanicalPosition() (float64, error)
	Position() (float64, error)
	Reverse() (bool, error)
	SetReverse(reverse bool) error
	StepSize() (float64, error)
	TargetPosition() (float64, error)

	Halt() error
	Move(offset float64) error
	MoveAbsolute(position float64) error
	MoveMechanical(position float64) error
	Sync(position float64) error
}
