package app

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"tableflip.dev/pokebox/pkg/mapper"
	"tableflip.dev/pokebox/pkg/pokemon"
)

// Form field names, as reported in FormError.
const (
	FieldNickname  = "nickname"
	FieldLevel     = "level"
	FieldEdition   = "edition"
	FieldBox       = "box"
	FieldPokedexID = "pokedexId"
)

// FormError is a local validation failure. The request it guards is never
// sent.
type FormError struct {
	Field   string
	Message string
}

func (e *FormError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidateNickname accepts blank nicknames and anything up to
// pokemon.MaxNicknameLength characters.
func ValidateNickname(nickname string) error {
	if n := utf8.RuneCountInString(strings.TrimSpace(nickname)); n > pokemon.MaxNicknameLength {
		return &FormError{Field: FieldNickname, Message: fmt.Sprintf("at most %d characters, got %d", pokemon.MaxNicknameLength, n)}
	}
	return nil
}

// ValidateLevel checks the level range and, when floor is positive, that the
// level is not lowered below it.
func ValidateLevel(level, floor int) error {
	if level < pokemon.MinLevel || level > pokemon.MaxLevel {
		return &FormError{Field: FieldLevel, Message: fmt.Sprintf("must be between %d and %d", pokemon.MinLevel, pokemon.MaxLevel)}
	}
	if floor > 0 && level < floor {
		return &FormError{Field: FieldLevel, Message: fmt.Sprintf("cannot be lowered below %d", floor)}
	}
	return nil
}

// ParseLevel converts form text into a level.
func ParseLevel(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, &FormError{Field: FieldLevel, Message: "required"}
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, &FormError{Field: FieldLevel, Message: fmt.Sprintf("%q is not a number", text)}
	}
	return n, nil
}

// CatchForm is the input for catching a species. Edition and Box may be
// labels or tokens.
type CatchForm struct {
	PokedexID int
	Nickname  string
	Level     int
	Edition   string
	Box       string
}

// Validate checks every field before a request is built.
func (f CatchForm) Validate() error {
	if f.PokedexID <= 0 {
		return &FormError{Field: FieldPokedexID, Message: "required"}
	}
	if err := ValidateNickname(f.Nickname); err != nil {
		return err
	}
	if err := ValidateLevel(f.Level, 0); err != nil {
		return err
	}
	if strings.TrimSpace(f.Edition) == "" {
		return &FormError{Field: FieldEdition, Message: "required"}
	}
	if strings.TrimSpace(f.Box) == "" {
		return &FormError{Field: FieldBox, Message: "required"}
	}
	return nil
}

// Request builds the create body with mapped tokens.
func (f CatchForm) Request() pokemon.CreateRequest {
	return pokemon.CreateRequest{
		PokedexID: f.PokedexID,
		Nickname:  strings.TrimSpace(f.Nickname),
		Level:     f.Level,
		Edition:   mapper.ToAPIEdition(f.Edition),
		Box:       mapper.ToAPIBoxName(f.Box),
	}
}

// UpdateForm is the editable subset of an owned entry. Empty Edition or Box
// keep the entry's current value.
type UpdateForm struct {
	Nickname string
	Level    int
	Edition  string
	Box      string
}

// FormFor seeds an UpdateForm from the entry's current values.
func FormFor(e pokemon.OwnedEntry) UpdateForm {
	return UpdateForm{
		Nickname: e.Nickname,
		Level:    e.Level,
		Edition:  mapper.DisplayEdition(e.Edition),
		Box:      mapper.DisplayBoxName(e.BoxName),
	}
}

// Validate checks the form against the entry it edits.
func (f UpdateForm) Validate(current pokemon.OwnedEntry) error {
	if err := ValidateNickname(f.Nickname); err != nil {
		return err
	}
	return ValidateLevel(f.Level, current.Level)
}

// Request builds the full-field update body.
func (f UpdateForm) Request(current pokemon.OwnedEntry) pokemon.UpdateRequest {
	req := pokemon.UpdateFrom(current)
	req.Nickname = strings.TrimSpace(f.Nickname)
	req.Level = f.Level
	if f.Edition != "" {
		req.Edition = f.Edition
	}
	if f.Box != "" {
		req.Box = f.Box
	}
	req.Edition = mapper.ToAPIEdition(req.Edition)
	req.Box = mapper.ToAPIBoxName(req.Box)
	return req
}
