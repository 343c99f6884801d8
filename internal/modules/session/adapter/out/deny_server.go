package out

import (
	"context"

	denyin "hyprfocus/internal/modules/denypage/port/in"
	sessionout "hyprfocus/internal/modules/session/port/out"
)

type DenyServer struct {
	denypage denyin.Usecase
}

func NewDenyServer(denypage denyin.Usecase) sessionout.DenyServer {
	return &DenyServer{denypage: denypage}
}

func (d *DenyServer) EnsureRunning(ctx context.Context) error {
	_, err := d.denypage.EnsureRunning(ctx)
	return err
}
