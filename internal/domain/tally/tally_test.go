package tally_test

import (
	"context"
	"strings"
	"testing"

	"github.com/okian/qperformance/internal/domain/model"
	"github.com/okian/qperformance/internal/domain/roster"
	"github.com/okian/qperformance/internal/domain/tally"
	. "github.com/smartystreets/goconvey/convey"
)

func rec(round, question int, quizzer string, team int, code string) model.EventRecord {
	return model.EventRecord{Round: round, Question: question, Quizzer: quizzer, Team: team, Event: code, HasEvent: true}
}

func column(t model.QuestionType) int {
	i, _ := model.DefaultTypeSet().Index(t)
	return i
}

func run(records []model.EventRecord, grid model.TypeGrid) (*tally.Result, *roster.Roster) {
	r := roster.Build(records)
	return tally.New().Aggregate(context.Background(), records, grid, r), r
}

func TestAggregateScenarios(t *testing.T) {
	grid := model.TypeGrid{{'Q', 'G', 'A'}}

	Convey("Given a tossup correct and a bonus error for Alice", t, func() {
		res, r := run([]model.EventRecord{
			rec(1, 1, "Alice", 1, "'TC'"),
			rec(1, 2, "Alice", 1, "'BE'"),
		}, grid)

		Convey("Then Q attempts/correct and G bonus attempts are 1", func() {
			alice, ok := r.Index("Alice")
			So(ok, ShouldBeTrue)
			So(res.Totals.Cell(alice, column('Q')), ShouldResemble, tally.Cell{Attempts: 1, Correct: 1})
			So(res.Totals.Cell(alice, column('G')), ShouldResemble, tally.Cell{BonusAttempts: 1})
			So(res.Warnings, ShouldBeEmpty)
			So(res.Counted, ShouldEqual, 2)
		})

		Convey("Then every other cell is zero", func() {
			total := int64(0)
			for _, m := range []tally.Matrix{res.Totals.Attempts, res.Totals.Correct, res.Totals.BonusAttempts, res.Totals.Bonus} {
				for _, row := range m {
					for _, v := range row {
						total += v
					}
				}
			}
			So(total, ShouldEqual, 3)
		})
	})

	Convey("Given a row outside the grid", t, func() {
		res, r := run([]model.EventRecord{
			rec(1, 9, "Bob", 2, "'TE'"),
		}, grid)

		Convey("Then exactly one warning is recorded and nothing is counted", func() {
			So(res.Warnings, ShouldHaveLength, 1)
			So(res.Warnings[0], ShouldEqual, "skipped: no question type for round 1, question 9")
			So(res.Counted, ShouldEqual, 0)
			So(res.ByRound, ShouldBeEmpty)
			bob, _ := r.Index("Bob")
			So(res.Totals.Cell(bob, column('Q')), ShouldResemble, tally.Cell{})
		})
	})

	Convey("Given round or question numbers that are missing", t, func() {
		res, _ := run([]model.EventRecord{
			rec(0, 1, "Cal", 1, "'TC'"),
			rec(1, 0, "Cal", 1, "'TC'"),
		}, grid)

		Convey("Then they underflow to a miss rather than a fault", func() {
			So(res.Warnings, ShouldHaveLength, 2)
			So(res.Counted, ShouldEqual, 0)
		})
	})
}

func TestAggregateGeneralPosition(t *testing.T) {
	Convey("Given a round with 21 questions", t, func() {
		grid := model.TypeGrid{[]model.QuestionType(strings.Repeat("Q", 21))}
		records := []model.EventRecord{rec(1, 21, "Dee", 1, "'TC'")}

		Convey("When aggregating with the default general position", func() {
			res, r := run(records, grid)

			Convey("Then question 21 counts as the general category", func() {
				dee, _ := r.Index("Dee")
				So(res.Totals.Cell(dee, column('G')).Correct, ShouldEqual, 1)
				So(res.Totals.Cell(dee, column('Q')).Correct, ShouldEqual, 0)
			})
		})

		Convey("When the override is disabled", func() {
			r := roster.Build(records)
			res := tally.New(tally.WithGeneralPosition(0)).Aggregate(context.Background(), records, grid, r)

			Convey("Then the grid content is used", func() {
				So(res.Totals.Cell(0, column('Q')).Correct, ShouldEqual, 1)
			})
		})
	})
}

func TestAggregateFallbacks(t *testing.T) {
	grid := model.TypeGrid{{'Q', 'Z'}}

	Convey("Given a quizzer missing from the roster", t, func() {
		known := []model.EventRecord{rec(1, 1, "Eli", 1, "'TC'")}
		r := roster.Build(known)
		records := append(known, rec(1, 1, "Ghost", 3, "'TC'"))
		res := tally.New().Aggregate(context.Background(), records, grid, r)

		Convey("Then the row is reported unresolved and not charged to row 0", func() {
			So(res.Unresolved, ShouldHaveLength, 1)
			So(res.Unresolved[0], ShouldContainSubstring, "Ghost")
			So(res.Totals.Cell(0, column('Q')).Attempts, ShouldEqual, 1)
		})
	})

	Convey("Given a grid cell holding an unknown type", t, func() {
		res, _ := run([]model.EventRecord{rec(1, 2, "Fin", 1, "'BC'")}, grid)

		Convey("Then the count lands in column 0 and the fallback is reported", func() {
			So(res.Totals.Cell(0, 0), ShouldResemble, tally.Cell{BonusAttempts: 1, Bonus: 1})
			So(res.Unresolved, ShouldHaveLength, 1)
			So(res.Unresolved[0], ShouldContainSubstring, "'Z'")
		})
	})

	Convey("Given an event code outside the four scoring codes", t, func() {
		res, _ := run([]model.EventRecord{rec(9, 9, "Gus", 1, "'SUB'")}, grid)

		Convey("Then it is ignored without a warning", func() {
			So(res.Warnings, ShouldBeEmpty)
			So(res.Counted, ShouldEqual, 0)
		})
	})
}

func TestAggregateByRound(t *testing.T) {
	Convey("Given events in two rounds", t, func() {
		grid := model.TypeGrid{{'Q', 'A'}, {'R', 'S'}}
		res, r := run([]model.EventRecord{
			rec(2, 1, "Hal", 1, "'TC'"),
			rec(1, 2, "Hal", 1, "'TE'"),
			rec(2, 2, "Ivy", 2, "'BC'"),
		}, grid)

		Convey("Then per-round counts are tracked separately", func() {
			So(res.Rounds(), ShouldResemble, []int{0, 1})
			hal, _ := r.Index("Hal")
			ivy, _ := r.Index("Ivy")
			So(res.ByRound[0].Cell(hal, column('A')).Attempts, ShouldEqual, 1)
			So(res.ByRound[1].Cell(hal, column('R')).Correct, ShouldEqual, 1)
			So(res.ByRound[1].Cell(ivy, column('S')).Bonus, ShouldEqual, 1)
			So(res.ByRound[0].Cell(ivy, column('S')), ShouldResemble, tally.Cell{})
		})
	})
}
