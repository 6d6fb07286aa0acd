package quizValidator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getter(fields map[string]string) func(string) string {
	return func(key string) string { return fields[key] }
}

func TestParseQuestionForm(t *testing.T) {
	fields := map[string]string{
		"q1_text":    "What is Go?",
		"q1_choice1": "A language",
		"q1_choice2": "A board game",
		"q1_choice3": "Both",
		"q1_correct": "3",
		"q2_text":    "Pick one",
		"q2_choice1": "Left",
		"q2_choice2": "Right",
		"q2_correct": "1",
	}

	questions := ParseQuestionForm(getter(fields))
	require.Len(t, questions, 2)

	assert.Equal(t, "What is Go?", questions[0].Text)
	require.Len(t, questions[0].Choices, 3)
	assert.False(t, questions[0].Choices[0].Correct)
	assert.False(t, questions[0].Choices[1].Correct)
	assert.True(t, questions[0].Choices[2].Correct)

	require.Len(t, questions[1].Choices, 2)
	assert.True(t, questions[1].Choices[0].Correct)
	assert.False(t, questions[1].Choices[1].Correct)
}

func TestParseQuestionFormStopsAtFirstGap(t *testing.T) {
	fields := map[string]string{
		"q1_text":    "First",
		"q1_choice1": "A",
		"q1_choice2": "B",
		// no q2_text
		"q3_text":    "Orphaned",
		"q3_choice1": "C",
	}

	questions := ParseQuestionForm(getter(fields))

	// Parsing stops at the missing index; q3 is silently dropped
	require.Len(t, questions, 1)
	assert.Equal(t, "First", questions[0].Text)
	assert.Len(t, questions[0].Choices, 2)
}

func TestParseQuestionFormSkippedChoiceSlots(t *testing.T) {
	fields := map[string]string{
		"q1_text":    "Sparse choices",
		"q1_choice1": "A",
		"q1_choice4": "D",
		"q1_correct": "4",
	}

	questions := ParseQuestionForm(getter(fields))
	require.Len(t, questions, 1)
	require.Len(t, questions[0].Choices, 2)
	assert.False(t, questions[0].Choices[0].Correct)
	assert.True(t, questions[0].Choices[1].Correct)
}

func TestParseQuestionFormNoCorrectIndex(t *testing.T) {
	fields := map[string]string{
		"q1_text":    "No answer key",
		"q1_choice1": "A",
		"q1_choice2": "B",
	}

	questions := ParseQuestionForm(getter(fields))
	require.Len(t, questions, 1)
	for _, choice := range questions[0].Choices {
		assert.False(t, choice.Correct)
	}
}

func TestParseEditForm(t *testing.T) {
	edit := ParseEditForm(map[string]string{
		"title":           "New title",
		"q12_text":        "Revised question",
		"choice34_text":   "Revised choice",
		"q12_correct":     "35",
		"q13_correct":     "not-a-number",
		"qX_text":         "ignored",
		"choiceY_text":    "ignored",
		"unrelated_field": "ignored",
	})

	assert.Equal(t, "New title", edit.Title)
	assert.Equal(t, "Revised question", edit.QuestionText[12])
	assert.Equal(t, "Revised choice", edit.ChoiceText[34])
	assert.EqualValues(t, 35, edit.CorrectChoice[12])

	_, ok := edit.CorrectChoice[13]
	assert.False(t, ok)
	assert.Len(t, edit.QuestionText, 1)
	assert.Len(t, edit.ChoiceText, 1)
}

func TestParseAnswersForm(t *testing.T) {
	selections := ParseAnswersForm(map[string]string{
		"question_7":  "21",
		"question_8":  "22",
		"question_x":  "9",
		"question_9":  "junk",
		"other_field": "1",
	})

	assert.Len(t, selections, 2)
	assert.EqualValues(t, 21, selections[7])
	assert.EqualValues(t, 22, selections[8])
}
