package datetimeprovider

import (
	"time"
)

const TimeFormat string = "2006-01-02"

type Provider struct{}

func New() *Provider {
	return &Provider{}
}

func (provider *Provider) Date() string {
	return time.Now().Format(TimeFormat)
}

func (provider *Provider) Format(layout string) string {
	return time.Now().Format(layout)
}
