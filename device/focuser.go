package device

// FocuserDevice is the IFocuserV4 contract.
type FocuserDevice interface {
	Device

	Absolute() (bool, error)
	IsMoving() (bool, error)
	MaxIncrement() (int32, error)
	MaxStep() (int32, error)
	Position() (int32, error)
	StepSize() (float64, error)
	TempComp() (bool, error)
	SetTempComp(enabled bool) error
	TempCompAvailable() (bool, error)
	Temperature() (float64, error)

	Halt() error
	Move(position int32) error
}

// UnimplementedFocuser answers every focuser member with NotImplemented.
type UnimplementedFocuser struct{}

func (UnimplementedFocuser) Absolute() (bool, error)          { return false, NotImplemented("Absolute") }
func (UnimplementedFocuser) IsMoving() (bool, error)          { return false, NotImplemented("IsMoving") }
func (UnimplementedFocuser) MaxIncrement() (int32, error)     { return 0, NotImplemented("MaxIncrement") }
func (UnimplementedFocuser) MaxStep() (int32, error)          { return 0, NotImplemented("MaxStep") }
func (UnimplementedFocuser) Position() (int32, error)         { return 0, NotImplemented("Position") }
func (UnimplementedFocuser) StepSize() (float64, error)       { return 0, NotImplemented("StepSize") }
func (UnimplementedFocuser) TempComp() (bool, error)          { return false, nil }
func (UnimplementedFocuser) SetTempComp(bool) error           { return NotImplemented("TempComp") }
func (UnimplementedFocuser) TempCompAvailable() (bool, error) { return false, nil }
func (UnimplementedFocuser) Temperature() (float64, error)    { return 0, NotImplemented("Temperature") }
func (UnimplementedFocuser) Halt() error                      { return NotImplemented("Halt") }
func (UnimplementedFocuser) Move(int32) error                 { return NotImplemented("Move") }
