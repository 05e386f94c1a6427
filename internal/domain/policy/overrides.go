package policy

// Overrides is a partial rule set. Nil fields leave the rule unchanged.
type Overrides struct {
	Algorithm        *string
	MinLength        *int
	RequireLetter    *bool
	RequireDigit     *bool
	RequireLower     *bool
	RequireUpper     *bool
	RequireSpecial   *bool
	ForbidWhitespace *bool
	HistoryCount     *int
	TimeToLiveDays   *int
}

// Override copies every non-nil field of o into r. The result is not
// validated; install it through Policy.Apply or Policy.Update.
func (r *Rules) Override(o Overrides) {
	set(&r.Algorithm, o.Algorithm)
	set(&r.MinLength, o.MinLength)
	set(&r.RequireLetter, o.RequireLetter)
	set(&r.RequireDigit, o.RequireDigit)
	set(&r.RequireLower, o.RequireLower)
	set(&r.RequireUpper, o.RequireUpper)
	set(&r.RequireSpecial, o.RequireSpecial)
	set(&r.ForbidWhitespace, o.ForbidWhitespace)
	set(&r.HistoryCount, o.HistoryCount)
	set(&r.TimeToLiveDays, o.TimeToLiveDays)
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
