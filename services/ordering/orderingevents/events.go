package orderingevents

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/simmerfood/menubot/lib/myerrors"
	"github.com/simmerfood/menubot/lib/myevents"
)

const (
	TopicName          = "order"
	orderConfirmedName = TopicName + ".confirmed"
)

type OrderEventService interface {
	Subscribe(c context.Context) error
	OnOrderConfirmed(c context.Context, topic string, event OrderConfirmed) error
}

func DispatchEvent(c context.Context, reader io.Reader, service OrderEventService) error {
	envelope, err := myevents.ParseEventEnvelope(reader)
	if err != nil {
		return myerrors.NewInvalidInputError(err)
	}

	switch envelope.EventTypeName {
	case orderConfirmedName:
		{
			event := OrderConfirmed{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnOrderConfirmed(c, envelope.Topic, event)
		}
	default:
		return myerrors.NewNotImplementedError(fmt.Errorf("event %s", envelope.EventTypeName))
	}
}

type OrderConfirmed struct {
	ReceiptUID string
	ShopperUID string
	Total      int
}

func (e OrderConfirmed) GetEventTypeName() string {
	return orderConfirmedName
}

func (e OrderConfirmed) GetAggregateName() string {
	return e.ReceiptUID
}
