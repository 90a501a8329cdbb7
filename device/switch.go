package device

// SwitchDevice is the ISwitchV3 contract. Channels are addressed by a
// zero-based id below MaxSwitch. Boolean channels report 0/1 through the
// value members; ranged channels report a value between MinSwitchValue and
// MaxSwitchValue in SwitchStep increments.
//
// The asynchronous members form a small state machine per channel:
// SetAsync and SetAsyncValue move a channel from idle to pending, the
// channel returns to idle once the change settles, and CancelAsync returns
// it to idle early. StateChangeComplete only observes.
type SwitchDevice interface {
	Device

	MaxSwitch() (int32, error)
	CanWrite(id int32) (bool, error)
	GetSwitch(id int32) (bool, error)
	GetSwitchDescription(id int32) (string, error)
	GetSwitchName(id int32) (string, error)
	GetSwitchValue(id int32) (float64, error)
	MinSwitchValue(id int32) (float64, error)
	MaxSwitchValue(id int32) (float64, error)
	SwitchStep(id int32) (float64, error)
	SetSwitch(id int32, state bool) error
	SetSwitchName(id int32, name string) error
	SetSwitchValue(id int32, value float64) error

	CanAsync(id int32) (bool, error)
	SetAsync(id int32, state bool) error
	SetAsyncValue(id int32, value float64) error
	StateChangeComplete(id int32) (bool, error)
	CancelAsync(id int32) error
}

// UnimplementedSwitchAsync answers the asynchronous switch members for
// drivers that only switch synchronously.
type UnimplementedSwitchAsync struct{}

func (UnimplementedSwitchAsync) CanAsync(int32) (bool, error)       { return false, nil }
func (UnimplementedSwitchAsync) SetAsync(int32, bool) error         { return NotImplemented("SetAsync") }
func (UnimplementedSwitchAsync) SetAsyncValue(int32, float64) error { return NotImplemented("SetAsyncValue") }
func (UnimplementedSwitchAsync) StateChangeComplete(int32) (bool, error) {
	return false, NotImplemented("StateChangeComplete")
}
func (UnimplementedSwitchAsync) CancelAsync(int32) error { return NotImplemented("CancelAsync") }
