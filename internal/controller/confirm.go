package controller

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

var (
	AlwaysConfirm Confirmer = ConfirmFunc(func(string) bool { return true })
	NeverConfirm  Confirmer = ConfirmFunc(func(string) bool { return false })
)

// confirmed asks confirmer and, on refusal, records the action as pending
// so the view can ask again.
func (c *Controller) confirmed(confirmer Confirmer, action, prompt string, targetID int64) bool {
	if confirmer != nil && confirmer.Confirm(prompt) {
		c.mu.Lock()
		c.state.Pending = nil
		c.mu.Unlock()
		return true
	}
	c.mu.Lock()
	c.state.Pending = &Confirmation{Action: action, Prompt: prompt, TargetID: targetID}
	c.mu.Unlock()
	return false
}
