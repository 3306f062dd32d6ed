// File: database/repository/remote/stream.go
package remoteRepo

import (
	"context"

	"slotsync/models"
	"slotsync/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// changeDoc is the subset of a change-stream document this client consumes.
type changeDoc struct {
	OperationType string   `bson:"operationType"`
	FullDocument  bson.Raw `bson:"fullDocument"`
	DocumentKey   struct {
		ID string `bson:"_id"`
	} `bson:"documentKey"`
}

// Subscribe opens change streams over both collections and pumps their
// events to onEvent until the returned stop function is called or the
// streams die. No buffering or replay: events missed while disconnected are
// recovered only by a fresh bootstrap.
func (r *MongoSyncClient) Subscribe(ctx context.Context, onEvent func(ChangeEvent), onStatus func(ChannelStatus)) (func(), error) {
	streamCtx, cancel := context.WithCancel(ctx)

	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	customerStream, err := r.customers.Watch(streamCtx, mongo.Pipeline{}, opts)
	if err != nil {
		cancel()
		return nil, err
	}
	bookingStream, err := r.bookings.Watch(streamCtx, mongo.Pipeline{}, opts)
	if err != nil {
		customerStream.Close(context.Background())
		cancel()
		return nil, err
	}

	onStatus(ChannelSubscribed)
	go r.pump(streamCtx, customerStream, CollectionCustomers, onEvent, onStatus)
	go r.pump(streamCtx, bookingStream, CollectionBookings, onEvent, onStatus)

	return cancel, nil
}

// pump drains one change stream, translating raw change documents into
// ChangeEvents.
func (r *MongoSyncClient) pump(ctx context.Context, stream *mongo.ChangeStream, collection string, onEvent func(ChangeEvent), onStatus func(ChannelStatus)) {
	logger := utils.GetLogger()
	defer stream.Close(context.Background())

	for stream.Next(ctx) {
		var doc changeDoc
		if err := stream.Decode(&doc); err != nil {
			logger.Warn("Failed to decode change event", zap.String("collection", collection), zap.Error(err))
			continue
		}
		if ev, ok := mapChange(collection, doc); ok {
			onEvent(ev)
		}
	}

	status, notify := exitStatus(ctx.Err(), stream.Err())
	if !notify {
		return
	}
	if status == ChannelErrored {
		logger.Error("Change stream failed", zap.String("collection", collection), zap.Error(stream.Err()))
	}
	onStatus(status)
}

// exitStatus resolves the channel status to report when a pump ends. A
// cancelled context is a deliberate unsubscribe and reports nothing.
func exitStatus(ctxErr, streamErr error) (ChannelStatus, bool) {
	if ctxErr != nil {
		return "", false
	}
	if streamErr != nil {
		return ChannelErrored, true
	}
	return ChannelClosed, true
}

// mapChange translates one change document into a ChangeEvent. Unsupported
// operation types (invalidate, drop, rename) are skipped.
func mapChange(collection string, doc changeDoc) (ChangeEvent, bool) {
	ev := ChangeEvent{Collection: collection, ID: doc.DocumentKey.ID}

	switch doc.OperationType {
	case "insert":
		ev.Type = EventInsert
	case "update", "replace":
		ev.Type = EventUpdate
	case "delete":
		ev.Type = EventDelete
		return ev, true
	default:
		return ChangeEvent{}, false
	}

	switch collection {
	case CollectionCustomers:
		var customer models.Customer
		if err := bson.Unmarshal(doc.FullDocument, &customer); err != nil {
			return ChangeEvent{}, false
		}
		ev.Customer = &customer
		ev.ID = customer.ID
	case CollectionBookings:
		var booking models.Booking
		if err := bson.Unmarshal(doc.FullDocument, &booking); err != nil {
			return ChangeEvent{}, false
		}
		ev.Booking = &booking
		ev.ID = booking.ID
	default:
		return ChangeEvent{}, false
	}
	return ev, true
}
