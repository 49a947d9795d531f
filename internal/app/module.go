package app

import (
	"time"

	"github.com/Divy97/rajawadu/internal/app/api/server"
	"github.com/Divy97/rajawadu/internal/app/service/callbacklog"
	"github.com/Divy97/rajawadu/internal/app/service/catalog"
	"github.com/Divy97/rajawadu/internal/app/service/guestuser"
	"github.com/Divy97/rajawadu/internal/app/service/order"
	"github.com/Divy97/rajawadu/internal/app/service/payu"
	"github.com/Divy97/rajawadu/internal/app/service/reconcile"
	"github.com/Divy97/rajawadu/internal/platform/db"
	"github.com/Divy97/rajawadu/pkg/config"
	"github.com/Divy97/rajawadu/pkg/logger"

	"go.uber.org/fx"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	server.Module,
	catalog.Module,
	order.Module,
	guestuser.Module,
	callbacklog.Module,
	payu.Module,
	reconcile.Module,
)
