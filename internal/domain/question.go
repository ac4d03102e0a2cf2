package domain

// Question is a multiple choice quiz question. Answer is the zero-based index
// of the correct option.
type Question struct {
	ID        int64
	QnInWords string
	ImageName *string
	Option1   string
	Option2   string
	Option3   string
	Option4   string
	Answer    int
}

// Options returns the four options in display order.
func (q Question) Options() []string {
	return []string{q.Option1, q.Option2, q.Option3, q.Option4}
}
