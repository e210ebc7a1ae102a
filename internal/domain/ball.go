package domain

// BallColor is the colour band a number is printed in on the ticket.
type BallColor string

const (
	BallYellow BallColor = "yellow"
	BallBlue   BallColor = "blue"
	BallRed    BallColor = "red"
	BallGray   BallColor = "gray"
	BallGreen  BallColor = "green"
)

func ColorOf(n int) BallColor {
	switch {
	case n <= 10:
		return BallYellow
	case n <= 20:
		return BallBlue
	case n <= 30:
		return BallRed
	case n <= 40:
		return BallGray
	default:
		return BallGreen
	}
}
