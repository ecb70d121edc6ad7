// Package carmen is an interactive Marseille tarot drawer. A deck is a
// directory of card images named 0.jpg through 77.jpg; seven cards are
// drawn in a fixed order, each from a deterministic mix of the user's
// number and a persistent base of "energy" integers.
package carmen

// Position is one slot in the seven-card spread.
type Position struct {
	Key       string
	ReadyMsg  string
	PickMsg   string
	ResultMsg string
}

// Order lists the spread positions in drawing order.
var Order = []Position{
	{"SELF",
		"Are you ready to draw the SELF?",
		"Please, pick a number for the SELF: ",
		"Your SELF is: "},
	{"OBSTACLE",
		"Are you ready to draw the OBSTACLE?",
		"Please, pick a number for the OBSTACLE: ",
		"Your OBSTACLE is: "},
	{"COUNSEL",
		"Are you ready to draw the COUNSEL?",
		"Please, pick a number for the COUNSEL: ",
		"Your COUNSEL is: "},
	{"POSITIVE",
		"Are you ready to draw the POSITIVE?",
		"Please, pick a number for the POSITIVE: ",
		"Your POSITIVE is: "},
	{"NEGATIVE",
		"Are you ready to draw the NEGATIVE?",
		"Please, pick a number for the NEGATIVE: ",
		"Your NEGATIVE is: "},
	{"HIDDEN",
		"Are you ready to draw the HIDDEN?",
		"Please, pick a number for the HIDDEN: ",
		"Your HIDDEN is: "},
	{"CLOSURE",
		"Are you ready to draw the CLOSURE?",
		"Please, pick a number for the CLOSURE: ",
		"Your CLOSURE is: "},
}
