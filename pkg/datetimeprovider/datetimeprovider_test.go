package datetimeprovider_test

import (
	"testing"
	"time"

	"github.com/jademcosta/logroller/pkg/datetimeprovider"
	"github.com/stretchr/testify/assert"
)

// There's a chance that this test will fail if it runs at the exact moment
// the day changes.
func TestDateIsCurrentDate(t *testing.T) {
	sut := datetimeprovider.New()

	result := sut.Date()

	assert.Regexp(t, "[0-9]{4}-([10]{1}[0-9]{1})-([0123]{1}[0-9]{1})", result, "should return a date in the format YYYY-MM-DD")
	assert.Equal(t, time.Now().Format(time.DateOnly), result, "should be the current day")
	assert.Equal(t, "2006-01-02", datetimeprovider.TimeFormat, "should obey the specific time format of YYYY-MM-DD that Go requires")
}

func TestFormatUsesTheProvidedLayout(t *testing.T) {
	sut := datetimeprovider.New()

	result := sut.Format("2006-01")

	assert.Regexp(t, "[0-9]{4}-([10]{1}[0-9]{1})", result, "should return a date in the format YYYY-MM")
	assert.Equal(t, time.Now().Format("2006-01"), result, "should be the current month")
}
