package hunt

import "fmt"

// Kind identifies which variant a Result is.
type Kind int

const (
	KindUnknown Kind = iota
	KindAllComplete
	KindLocked
	KindDeliverClue
	KindSuccessUnlock
	KindFailure
	KindGuardrailViolation
	KindGenerateRequest
	KindError
)

var kindNames = map[Kind]string{
	KindUnknown:            "unknown",
	KindAllComplete:        "all_complete",
	KindLocked:             "locked",
	KindDeliverClue:        "deliver_clue",
	KindSuccessUnlock:      "success_unlock",
	KindFailure:            "failure",
	KindGuardrailViolation: "guardrail_violation",
	KindGenerateRequest:    "generate_request",
	KindError:              "error",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Result is the outcome of one Advance call. Callers type-switch on the
// concrete variants below; every variant must be translated into a reply.
type Result interface {
	Kind() Kind
}

// AllComplete means every gift in the catalog is done. Finished is set only
// on the turn that completed the last gift.
type AllComplete struct {
	Finished bool
}

// Locked means the next gift exists but its unlock delay has not elapsed.
type Locked struct {
	Hours        int
	Minutes      int
	NextGiftName string
}

// DeliverClue means the next gift just became reachable.
type DeliverClue struct {
	Ordinal  int
	GiftName string
	Question string
}

// SuccessUnlock means a customizable gift was unlocked and now awaits rewrite requests.
type SuccessUnlock struct {
	Ordinal             int
	GiftName            string
	Content             string
	CustomizationPrompt string
}

// Failure is a wrong answer. The caller should hint without revealing the answer.
type Failure struct {
	Guess    string
	Question string
}

// GuardrailViolation is an attempt to skip ahead during customization.
type GuardrailViolation struct{}

// GenerateRequest asks the caller to run Prompt through the text generator and
// store the output with UpdateDraft(Ordinal, ...).
type GenerateRequest struct {
	Ordinal int
	Prompt  string
}

// ConfigError signals the hunt reached a state its configuration cannot
// support. It is a defect, never a consequence of user input.
type ConfigError struct {
	Reason string
	Err    error
}

// Unknown is the fallback; the caller should ask the user what they want next.
type Unknown struct{}

func (AllComplete) Kind() Kind        { return KindAllComplete }
func (Locked) Kind() Kind             { return KindLocked }
func (DeliverClue) Kind() Kind        { return KindDeliverClue }
func (SuccessUnlock) Kind() Kind      { return KindSuccessUnlock }
func (Failure) Kind() Kind            { return KindFailure }
func (GuardrailViolation) Kind() Kind { return KindGuardrailViolation }
func (GenerateRequest) Kind() Kind    { return KindGenerateRequest }
func (ConfigError) Kind() Kind        { return KindError }
func (Unknown) Kind() Kind            { return KindUnknown }

// TimeRemaining renders the lock as "H hours and M minutes".
func (l Locked) TimeRemaining() string {
	return fmt.Sprintf("%d hours and %d minutes", l.Hours, l.Minutes)
}

func (e ConfigError) Error() string {
	if e.Err != nil {
		return e.Reason + ": " + e.Err.Error()
	}
	return e.Reason
}

func (e ConfigError) Unwrap() error {
	return e.Err
}
