package server

import (
	"github.com/wheretogo/compass/internal/compass"
	"github.com/wheretogo/compass/internal/visit"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

type ResultResponse struct {
	Direction compass.Direction `json:"direction"`
	Scenario  string            `json:"scenario"`
	MainSpot  compass.Spot      `json:"mainSpot"`
	SubSpot   compass.Spot      `json:"subSpot"`
	NarinTip  string            `json:"narinTip"`
	Date      string            `json:"date"`
}

// SpinResponse carries a result with its hidden gem withheld; the gem is
// unlocked separately.
type SpinResponse struct {
	Attempt int            `json:"attempt"`
	Message string         `json:"message"`
	Result  ResultResponse `json:"result"`
}

type TomorrowResponse struct {
	Date      string            `json:"date"`
	Direction compass.Direction `json:"direction"`
}

// newResultResponse never carries the hidden gem. The gem is only handed
// out by the unlock endpoint, after the ad.
func newResultResponse(res compass.Result) ResultResponse {
	return ResultResponse{
		Direction: res.Direction,
		Scenario:  res.Scenario,
		MainSpot:  res.MainSpot,
		SubSpot:   res.SubSpot,
		NarinTip:  res.Tip,
		Date:      res.Date,
	}
}

func newSpinResponse(sp visit.Spin) SpinResponse {
	return SpinResponse{
		Attempt: sp.Attempt,
		Message: sp.Message,
		Result:  newResultResponse(sp.Result),
	}
}
