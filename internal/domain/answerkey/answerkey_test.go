package answerkey_test

import (
	"errors"
	"testing"

	"github.com/okian/qperformance/internal/domain/answerkey"
	"github.com/okian/qperformance/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const sampleKey = `{\rtf1\ansi SET #3\par 1 Q.\tab first answer\tab\par 2 G.\tab second answer\tab\par 3 A.\tab third answer`

func TestRoundNumber(t *testing.T) {
	Convey("Given answer-key text", t, func() {
		Convey("When it declares SET #3", func() {
			round, err := answerkey.RoundNumber(sampleKey)

			Convey("Then the 0-indexed round is 2", func() {
				So(err, ShouldBeNil)
				So(round, ShouldEqual, 2)
			})
		})

		Convey("When the marker is missing", func() {
			_, err := answerkey.RoundNumber(`{\rtf1 no marker here}`)

			Convey("Then it fails with ErrMissingRoundNumber", func() {
				So(errors.Is(err, answerkey.ErrMissingRoundNumber), ShouldBeTrue)
			})
		})

		Convey("When the number does not fit a small integer", func() {
			_, errBig := answerkey.RoundNumber("SET #300")
			_, errZero := answerkey.RoundNumber("SET #0")

			Convey("Then it fails with ErrInvalidRoundNumber", func() {
				So(errors.Is(errBig, answerkey.ErrInvalidRoundNumber), ShouldBeTrue)
				So(errors.Is(errZero, answerkey.ErrInvalidRoundNumber), ShouldBeTrue)
			})
		})

		Convey("When several markers appear", func() {
			round, err := answerkey.RoundNumber("SET #5 ... SET #7")

			Convey("Then the first one wins", func() {
				So(err, ShouldBeNil)
				So(round, ShouldEqual, 4)
			})
		})
	})
}

func TestTypes(t *testing.T) {
	Convey("Given an extractor with the default tab marker", t, func() {
		ex := answerkey.NewExtractor()

		Convey("When extracting a well-formed key", func() {
			key, err := ex.Extract(sampleKey)

			Convey("Then the types follow document order", func() {
				So(err, ShouldBeNil)
				So(key.Round, ShouldEqual, 2)
				So(key.Types, ShouldResemble, []model.QuestionType{'Q', 'G', 'A'})
			})
		})

		Convey("When cells are empty or a single character", func() {
			// cells: "", "a", "x", "b", "1 R.", "c"
			types := ex.Types(`\taba\tabx\tabb\tab1 R.\tabc`)

			Convey("Then they carry no type", func() {
				So(types, ShouldResemble, []model.QuestionType{'R'})
			})
		})

		Convey("When the text has no marker at all", func() {
			types := ex.Types("Q.")

			Convey("Then the whole text is one cell", func() {
				So(types, ShouldResemble, []model.QuestionType{'Q'})
			})
		})

		Convey("When extracting from text without a round marker", func() {
			_, err := ex.Extract(`1 Q.\tab answer`)

			Convey("Then the round error propagates", func() {
				So(errors.Is(err, answerkey.ErrMissingRoundNumber), ShouldBeTrue)
			})
		})
	})

	Convey("Given an extractor with a custom tab marker", t, func() {
		ex := answerkey.NewExtractor(answerkey.WithTabMarker("|"))

		Convey("Then cells split on that marker", func() {
			So(ex.Types("1 S.|ans|2 X.|ans"), ShouldResemble, []model.QuestionType{'S', 'X'})
		})
	})
}
