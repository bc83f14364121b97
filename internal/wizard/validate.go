package wizard

// Result is the outcome of Check.
type Result struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// ValidateAnswers checks that answers form a complete, well-formed answer set.
// Only the first violation is reported, checked in this order: empty set,
// missing questions, unknown question, empty selection, unknown option,
// too many selections for a single-choice question.
func (b *Bank) ValidateAnswers(answers []Answer) error {
	if len(answers) == 0 {
		return ErrNoAnswersProvided
	}

	answered := make(map[string]bool, len(answers))
	for _, a := range answers {
		answered[a.QuestionID] = true
	}
	var missing []string
	for _, q := range b.questions {
		if !answered[q.ID] {
			missing = append(missing, q.ID)
		}
	}
	if len(missing) > 0 {
		return &MissingAnswersError{QuestionIDs: missing}
	}

	for _, a := range answers {
		if _, ok := b.question(a.QuestionID); !ok {
			return &InvalidQuestionError{QuestionID: a.QuestionID}
		}
	}
	for _, a := range answers {
		if len(a.SelectedOptionIDs) == 0 {
			return &NoOptionSelectedError{QuestionID: a.QuestionID}
		}
	}
	for _, a := range answers {
		if err := b.checkOptions(a); err != nil {
			return err
		}
	}
	for _, a := range answers {
		if err := b.checkCardinality(a); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAnswer checks a single answer in isolation, as the wizard records
// answers one question at a time.
func (b *Bank) ValidateAnswer(a Answer) error {
	if _, ok := b.question(a.QuestionID); !ok {
		return &InvalidQuestionError{QuestionID: a.QuestionID}
	}
	if len(a.SelectedOptionIDs) == 0 {
		return &NoOptionSelectedError{QuestionID: a.QuestionID}
	}
	if err := b.checkOptions(a); err != nil {
		return err
	}
	return b.checkCardinality(a)
}

// Check wraps ValidateAnswers in a valid/error result.
func (b *Bank) Check(answers []Answer) Result {
	if err := b.ValidateAnswers(answers); err != nil {
		return Result{Valid: false, Error: err.Error()}
	}
	return Result{Valid: true}
}

func (b *Bank) checkOptions(a Answer) error {
	q, _ := b.question(a.QuestionID)
	var invalid []string
	for _, id := range a.SelectedOptionIDs {
		if _, ok := q.option(id); !ok {
			invalid = append(invalid, id)
		}
	}
	if len(invalid) > 0 {
		return &InvalidOptionsError{QuestionID: a.QuestionID, OptionIDs: invalid}
	}
	return nil
}

func (b *Bank) checkCardinality(a Answer) error {
	q, _ := b.question(a.QuestionID)
	if q.Type == SingleChoice && len(a.SelectedOptionIDs) > 1 {
		return &TooManySelectionsError{QuestionID: a.QuestionID}
	}
	return nil
}

// ValidateAnswers validates against the default bank.
func ValidateAnswers(answers []Answer) error {
	return defaultBank.ValidateAnswers(answers)
}

// ValidateAnswer validates one answer against the default bank.
func ValidateAnswer(a Answer) error {
	return defaultBank.ValidateAnswer(a)
}

// Check validates against the default bank.
func Check(answers []Answer) Result {
	return defaultBank.Check(answers)
}
