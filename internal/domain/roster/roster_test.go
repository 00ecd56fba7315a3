package roster_test

import (
	"testing"

	"github.com/okian/qperformance/internal/domain/model"
	"github.com/okian/qperformance/internal/domain/roster"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBuild(t *testing.T) {
	Convey("Given records from several teams", t, func() {
		records := []model.EventRecord{
			{Quizzer: "Zed", Team: 2},
			{Quizzer: "Amy", Team: 1},
			{Quizzer: "Yan", Team: 2},
			{Quizzer: "Zed", Team: 1},
			{Quizzer: "Bea", Team: 1},
			{Quizzer: "Nil", Team: 0},
		}

		Convey("When building the roster", func() {
			r := roster.Build(records)

			Convey("Then names are grouped by ascending team in first-seen order", func() {
				So(r.Names(), ShouldResemble, []string{"Nil", "Amy", "Bea", "Zed", "Yan"})
				So(r.Len(), ShouldEqual, 5)
			})

			Convey("Then a name seen under another team later is not duplicated", func() {
				i, ok := r.Index("Zed")
				So(ok, ShouldBeTrue)
				So(i, ShouldEqual, 3)
			})

			Convey("Then unknown names fall back to index 0 and report a miss", func() {
				i, ok := r.Index("Ghost")
				So(ok, ShouldBeFalse)
				So(i, ShouldEqual, 0)
			})
		})

		Convey("When building twice", func() {
			Convey("Then the ordering is identical", func() {
				So(roster.Build(records).Names(), ShouldResemble, roster.Build(records).Names())
			})
		})
	})

	Convey("Given event rows whose team column is sometimes quoted", t, func() {
		records := model.DefaultLayout().Records([][]string{
			{"", "", "", "", "'1'", "'1'", "", "Zed", "'2'", "", "'TC'"},
			{"", "", "", "", "'1'", "'2'", "", "Amy", "1", "", "'TC'"},
			{"", "", "", "", "'1'", "'3'", "", "Bo", "'0'", "", "'TC'"},
		})

		Convey("Then quoted teams group under team 0 ahead of team 1", func() {
			So(roster.Build(records).Names(), ShouldResemble, []string{"Zed", "Bo", "Amy"})
		})
	})

	Convey("Given no records", t, func() {
		r := roster.Build(nil)

		Convey("Then the roster is empty", func() {
			So(r.Len(), ShouldEqual, 0)
			So(r.Names(), ShouldBeEmpty)
		})
	})
}
