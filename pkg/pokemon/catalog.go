package pokemon

import "strconv"

// Label pairs an API token with the label the UI shows for it.
type Label struct {
	Token   string
	Display string
}

// DefaultEditions lists the game editions the collection API knows about, in
// the order the API enumerates them.
func DefaultEditions() []Label {
	return []Label{
		{Token: "GELB", Display: "Gelb"},
		{Token: "ROT", Display: "Rot"},
		{Token: "BLAU", Display: "Blau"},
		{Token: "GRUEN", Display: "Grün"},
	}
}

// MaxBoxes is the number of numbered storage boxes per edition.
const MaxBoxes = 12

// DefaultBoxes lists the reserved team box followed by the numbered boxes.
func DefaultBoxes() []Label {
	out := make([]Label, 0, MaxBoxes+1)
	out = append(out, Label{Token: "TEAM", Display: "Team"})
	for i := 1; i <= MaxBoxes; i++ {
		n := strconv.Itoa(i)
		out = append(out, Label{Token: "BOX" + n, Display: "Box " + n})
	}
	return out
}

// Displays returns only the display half of each label.
func Displays(labels []Label) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		out = append(out, l.Display)
	}
	return out
}
