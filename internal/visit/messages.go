package visit

import (
	"fmt"
	"strings"

	"github.com/wheretogo/compass/internal/compass"
)

var hintOrder = [4]compass.DirectionID{compass.East, compass.West, compass.South, compass.North}

// TomorrowHint picks the teaser direction shown for dateKey. It is the same
// for every device and uses its own hash (seed 0, multiplier 31), not Hash.
func TomorrowHint(dateKey string) compass.DirectionID {
	var h int32
	for _, r := range "tomorrow-hint@" + dateKey {
		h = h*31 + r
	}
	n := int64(h)
	if n < 0 {
		n = -n
	}
	return hintOrder[n%4]
}

// Greeting is the mascot's line for the local hour of day.
func Greeting(hour int) string {
	switch {
	case hour < 12:
		return "좋은 아침이래요~ 오늘은 어디로 떠나볼래요?"
	case hour < 18:
		return "오늘도 좋은 하루래요~ 나침반을 돌려볼래요?"
	default:
		return "고요한 저녁이래요~ 오늘의 여행지가 궁금하지 않대요?"
	}
}

func FoundMessage(d compass.Direction) string {
	return fmt.Sprintf("%s쪽이래요! 오늘의 여행지를 찾았대요~ 크르릉!", d.Name)
}

// ShareMessage is written for the recipient: where the compass pointed and
// an invitation to spin their own.
func ShareMessage(res compass.Result, link string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "오늘 나침반이 가리킨 곳은 %s쪽!\n\n", res.Direction.Name)
	fmt.Fprintf(&b, "%s %s\n", res.MainSpot.Name, res.MainSpot.Tag)
	fmt.Fprintf(&b, "%s %s\n\n", res.SubSpot.Name, res.SubSpot.Tag)
	b.WriteString("너도 나침반 돌려봐!")
	if link != "" {
		b.WriteString(" " + link)
	}
	return b.String()
}
