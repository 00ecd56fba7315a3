package tally

// Matrix is a dense [quizzer][question type] count table.
type Matrix [][]int64

// NewMatrix returns a zeroed rows x cols matrix.
func NewMatrix(rows, cols int) Matrix {
	m := make(Matrix, rows)
	for i := range m {
		m[i] = make([]int64, cols)
	}
	return m
}

// Counts groups the four parallel matrices.
type Counts struct {
	Attempts      Matrix
	Correct       Matrix
	BonusAttempts Matrix
	Bonus         Matrix
}

// NewCounts returns four zeroed rows x cols matrices.
func NewCounts(rows, cols int) Counts {
	return Counts{
		Attempts:      NewMatrix(rows, cols),
		Correct:       NewMatrix(rows, cols),
		BonusAttempts: NewMatrix(rows, cols),
		Bonus:         NewMatrix(rows, cols),
	}
}

// Cell holds the four counts of one quizzer for one question type.
type Cell struct {
	Attempts      int64
	Correct       int64
	BonusAttempts int64
	Bonus         int64
}

// Cell returns the counts at (quizzer, column).
func (c Counts) Cell(quizzer, column int) Cell {
	return Cell{
		Attempts:      c.Attempts[quizzer][column],
		Correct:       c.Correct[quizzer][column],
		BonusAttempts: c.BonusAttempts[quizzer][column],
		Bonus:         c.Bonus[quizzer][column],
	}
}
