package quizValidator

import (
	"fmt"
	"regexp"
	"strconv"

	"lms/services/quiz"
)

// maxChoicesPerQuestion is what the authoring form renders; the data model
// itself has no cap.
const maxChoicesPerQuestion = 4

// ParseQuestionForm reads the flat authoring convention: q{i}_text for
// question i's text, q{i}_choice{c} for its choices (c in 1..4) and
// q{i}_correct holding the 1-based index of the correct choice. Indexing
// starts at 1 and stops at the first missing question text, so a gap in
// the indices drops everything after it.
func ParseQuestionForm(get func(string) string) []quiz.QuestionInput {
	var questions []quiz.QuestionInput

	for index := 1; ; index++ {
		text := get(fmt.Sprintf("q%d_text", index))
		if text == "" {
			break
		}

		correct := get(fmt.Sprintf("q%d_correct", index))

		question := quiz.QuestionInput{Text: text}
		for cIndex := 1; cIndex <= maxChoicesPerQuestion; cIndex++ {
			cText := get(fmt.Sprintf("q%d_choice%d", index, cIndex))
			if cText == "" {
				continue
			}
			question.Choices = append(question.Choices, quiz.ChoiceInput{
				Text:    cText,
				Correct: correct == strconv.Itoa(cIndex),
			})
		}

		questions = append(questions, question)
	}

	return questions
}

var (
	editQuestionTextKey = regexp.MustCompile(`^q(\d+)_text$`)
	editChoiceTextKey   = regexp.MustCompile(`^choice(\d+)_text$`)
	editCorrectKey      = regexp.MustCompile(`^q(\d+)_correct$`)
	answerKey           = regexp.MustCompile(`^question_(\d+)$`)
)

// ParseEditForm reads the edit convention, where fields address existing
// rows by their database ids: q{question_id}_text, choice{choice_id}_text
// and q{question_id}_correct (the correct choice's id).
func ParseEditForm(fields map[string]string) quiz.QuizEdit {
	edit := quiz.QuizEdit{
		Title:         fields["title"],
		QuestionText:  make(map[uint]string),
		ChoiceText:    make(map[uint]string),
		CorrectChoice: make(map[uint]uint),
	}

	for key, value := range fields {
		if m := editQuestionTextKey.FindStringSubmatch(key); m != nil {
			if id, err := strconv.ParseUint(m[1], 10, 32); err == nil {
				edit.QuestionText[uint(id)] = value
			}
			continue
		}
		if m := editChoiceTextKey.FindStringSubmatch(key); m != nil {
			if id, err := strconv.ParseUint(m[1], 10, 32); err == nil {
				edit.ChoiceText[uint(id)] = value
			}
			continue
		}
		if m := editCorrectKey.FindStringSubmatch(key); m != nil {
			qID, err := strconv.ParseUint(m[1], 10, 32)
			if err != nil {
				continue
			}
			if cID, err := strconv.ParseUint(value, 10, 32); err == nil {
				edit.CorrectChoice[uint(qID)] = uint(cID)
			}
		}
	}

	return edit
}

// ParseAnswersForm reads take-quiz selections: question_{question_id}
// holding the selected choice id.
func ParseAnswersForm(fields map[string]string) map[uint]uint {
	selections := make(map[uint]uint)
	for key, value := range fields {
		m := answerKey.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		qID, err := strconv.ParseUint(m[1], 10, 32)
		if err != nil {
			continue
		}
		cID, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			continue
		}
		selections[uint(qID)] = uint(cID)
	}
	return selections
}
