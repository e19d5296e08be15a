package dialog

type ActivityType string

const (
	ActivityMessage       ActivityType = "message"
	ActivityNumberPrompt  ActivityType = "prompt:number"
	ActivityConfirmPrompt ActivityType = "prompt:confirm"
)

// Activity is one piece of bot output produced during a turn.
type Activity struct {
	Type ActivityType `json:"type"`
	Text string       `json:"text"`
}

func (a Activity) IsPrompt() bool {
	return a.Type == ActivityNumberPrompt || a.Type == ActivityConfirmPrompt
}

// turn collects the output of one turn and holds the user input until a state consumes it.
type turn struct {
	input      string
	hasInput   bool
	activities []Activity
}

func (t *turn) consume() (string, bool) {
	if !t.hasInput {
		return "", false
	}

	t.hasInput = false

	return t.input, true
}

func (t *turn) send(text string) {
	t.activities = append(t.activities, Activity{Type: ActivityMessage, Text: text})
}

func (t *turn) prompt(kind ActivityType, text string) {
	t.activities = append(t.activities, Activity{Type: kind, Text: text})
}
