package actors

import (
	"reflect"

	"github.com/asynkron/protoactor-go/actor"
)

type Dispatcher struct {
	handlers map[reflect.Type]Handler
}

type Handler struct {
	fn      reflect.Value
	reqType reflect.Type
}

func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[reflect.Type]Handler),
	}
	d.registerAll()
	return d
}

func (d *Dispatcher) registerAll() {
	register(d, CH.HandleAdvanceDays)
	register(d, CH.HandleSubmitOrder)
	register(d, CH.HandleCancelOrder)
	register(d, CH.HandleGetDetail)
	register(d, CH.HandleCreateCampaign)
	register(d, CH.HandleImportScenario)
}

func register[Req any](
	d *Dispatcher,
	fn func(ctx actor.Context, p *CampaignActor, req Req),
) {
	reqType := reflect.TypeOf((*Req)(nil)).Elem()
	if reqType == nil {
		panic("dispatcher req type cannot be nil")
	}

	d.handlers[reqType] = Handler{
		fn:      reflect.ValueOf(fn),
		reqType: reqType,
	}
}

func (d *Dispatcher) Dispatch(ctx actor.Context, p *CampaignActor, req CampaignMessage) {
	if req == nil {
		ctx.Respond(AckReply{Reason: "nil request"})
		return
	}

	bodyType := reflect.TypeOf(req)
	handler, ok := d.handlers[bodyType]
	if !ok {
		ctx.Respond(AckReply{Reason: "no handler for request body"})
		return
	}

	if bodyType != handler.reqType {
		ctx.Respond(AckReply{Reason: "request body type mismatch"})
		return
	}

	handler.fn.Call([]reflect.Value{
		reflect.ValueOf(ctx),
		reflect.ValueOf(p),
		reflect.ValueOf(req),
	})
}
