package postgres

// DateBucket packs a weekday/weekend flag and a 5-minute-of-day bucket into
// the single linear index 0..576 used as this provider's bucketing scheme:
// 288 five-minute buckets per day (24*60/5) times two (weekday, weekend).
// Weekday buckets occupy 0..287; weekend buckets occupy 288..575.
type DateBucket struct {
	IsWeekend    bool
	FiveMinIndex int // 0..287
}

// Index returns DateBucket's position in the 0..576 linear range.
func (d DateBucket) Index() int {
	if d.IsWeekend {
		return 288 + d.FiveMinIndex
	}
	return d.FiveMinIndex
}

// NewDateBucket builds a DateBucket from an hour (0-23), minute (0-59), and
// weekday number where 0=Sunday per time.Weekday (6 and 0 are the weekend).
func NewDateBucket(hour, minute, weekday int) DateBucket {
	isWeekend := weekday == 0 || weekday == 6
	fiveMin := (hour*60 + minute) / 5
	if fiveMin > 287 {
		fiveMin = 287
	}
	return DateBucket{IsWeekend: isWeekend, FiveMinIndex: fiveMin}
}
