package mypublisher

import (
	"context"

	"github.com/simmerfood/menubot/lib/myevents"
)

//go:generate mockgen -source=api.go -package mypublisher -destination publisher_mock.go Publisher
type Publisher interface {
	Publish(c context.Context, topic string, event myevents.Event) error
	CreateTopic(c context.Context, topicName string) error
}
