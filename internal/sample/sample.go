// Package sample writes synthetic tournaments to disk: one answer-key document
// per round plus a comma separated event log in the default column layout.
package sample

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/okian/qperformance/internal/domain/model"
)

// ErrInvalidConfig is returned when a Config cannot produce a tournament.
var ErrInvalidConfig = errors.New("invalid sample config")

// Default tournament shape.
const (
	DefaultRounds            = 3
	DefaultQuestionsPerRound = 20
	DefaultTeams             = 3
	DefaultQuizzersPerTeam   = 4
	DefaultEvents            = 120
	DefaultTournament        = "Sample"
)

// eventColumns is one more than the highest default layout column.
const eventColumns = 11

// Config describes the tournament to generate. The same Seed always
// produces the same files.
type Config struct {
	Rounds            int
	QuestionsPerRound int
	Teams             int
	QuizzersPerTeam   int
	Events            int
	Tournament        string
	Types             string // codes drawn for each question
	Seed              uint64
}

// DefaultConfig returns a small tournament over the default question types.
func DefaultConfig() Config {
	return Config{
		Rounds:            DefaultRounds,
		QuestionsPerRound: DefaultQuestionsPerRound,
		Teams:             DefaultTeams,
		QuizzersPerTeam:   DefaultQuizzersPerTeam,
		Events:            DefaultEvents,
		Tournament:        DefaultTournament,
		Types:             model.DefaultTypeCodes,
		Seed:              1,
	}
}

// Fixture locates a generated tournament.
type Fixture struct {
	QuestionSets string
	EventLog     string
	Quizzers     []string // in team order, as the roster orders them
}

// Write generates the tournament under root.
func Write(root string, cfg Config) (Fixture, error) {
	if cfg.Rounds < 1 || cfg.Rounds > 127 || cfg.QuestionsPerRound < 1 ||
		cfg.Teams < 1 || cfg.QuizzersPerTeam < 1 || cfg.Events < 0 || cfg.Types == "" {
		return Fixture{}, fmt.Errorf("%w: %+v", ErrInvalidConfig, cfg)
	}
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	fx := Fixture{
		QuestionSets: filepath.Join(root, "question_sets"),
		EventLog:     filepath.Join(root, "quiz_data.csv"),
	}
	if err := os.MkdirAll(fx.QuestionSets, 0o755); err != nil {
		return Fixture{}, err
	}

	codes := []rune(cfg.Types)
	for round := 1; round <= cfg.Rounds; round++ {
		var b strings.Builder
		fmt.Fprintf(&b, `{\rtf1\ansi\deff0 {\b SET #%d}`, round)
		for q := 1; q <= cfg.QuestionsPerRound; q++ {
			fmt.Fprintf(&b, `\par %d %c.\tab Answer %d\tab`, q, codes[rng.IntN(len(codes))], q)
		}
		b.WriteString("}")
		name := filepath.Join(fx.QuestionSets, fmt.Sprintf("set%02d.rtf", round))
		if err := os.WriteFile(name, []byte(b.String()), 0o600); err != nil {
			return Fixture{}, err
		}
	}

	for team := 1; team <= cfg.Teams; team++ {
		for i := 1; i <= cfg.QuizzersPerTeam; i++ {
			fx.Quizzers = append(fx.Quizzers, fmt.Sprintf("Team%d Quizzer%d", team, i))
		}
	}

	layout := model.DefaultLayout()
	events := model.DefaultEventCodes().List()
	var b strings.Builder
	b.WriteString("tournament,table,date,time,round,question,seat,quizzer,team,points,event\n")
	// Every quizzer appears once so the roster is complete.
	for i := 0; i < cfg.Events || i < len(fx.Quizzers); i++ {
		q := i % len(fx.Quizzers)
		if i >= len(fx.Quizzers) {
			q = rng.IntN(len(fx.Quizzers))
		}
		row := make([]string, eventColumns)
		row[layout.Tournament] = cfg.Tournament
		row[layout.Round] = fmt.Sprintf("'%d'", 1+rng.IntN(cfg.Rounds))
		row[layout.Question] = fmt.Sprintf("'%d'", 1+rng.IntN(cfg.QuestionsPerRound))
		row[layout.Quizzer] = fx.Quizzers[q]
		row[layout.Team] = fmt.Sprint(1 + q/cfg.QuizzersPerTeam)
		row[layout.Event] = events[rng.IntN(len(events))]
		b.WriteString(strings.Join(row, ","))
		b.WriteByte('\n')
	}
	if err := os.WriteFile(fx.EventLog, []byte(b.String()), 0o600); err != nil {
		return Fixture{}, err
	}
	return fx, nil
}
