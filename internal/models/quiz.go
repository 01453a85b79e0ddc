package models

import (
	"time"

	"gorm.io/datatypes"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// QuizQuestion is one generated question. Options carries 3-4 choices and
// Answer is the expected option text.
type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

type Quiz struct {
	ID         string         `json:"id" gorm:"primaryKey;size:255"`
	Topic      string         `json:"topic" gorm:"not null;size:200;index"`
	Difficulty Difficulty     `json:"difficulty" gorm:"size:20"`
	Questions  datatypes.JSON `json:"questions" gorm:"not null"`
	CreatedBy  string         `json:"created_by" gorm:"size:20;index"`
	TeacherID  *string        `json:"teacher_id,omitempty" gorm:"size:255;index"`

	CreatedAt time.Time `json:"created_at"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizCreatedByTeacher marks quizzes published to the whole class by a
// teacher, as opposed to ad hoc AI generations.
const QuizCreatedByTeacher = "Teacher"
