package main

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	protoactor "github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"

	"Cataphract/internal/campaign/actors"
	"Cataphract/internal/campaign/app/port"
	"Cataphract/internal/campaign/entity"
	campaigninterfaces "Cataphract/internal/campaign/interfaces"
	"Cataphract/internal/campaign/rules"
	"Cataphract/internal/shared/infrastructure/db"
	sharedmongo "Cataphract/internal/shared/infrastructure/mongo"
	"Cataphract/internal/shared/logs"
	"Cataphract/internal/shared/serverconfig"
	transporthttp "Cataphract/internal/shared/transport/http"
	"Cataphract/internal/shared/transport/ws"
	"Cataphract/modules/kit/logx"

	campaignmemory "Cataphract/internal/campaign/infra/persistence/memory"
	campaignmongo "Cataphract/internal/campaign/infra/persistence/mongodb"
	campaignmysql "Cataphract/internal/campaign/infra/persistence/mysql"
	campaignmodel "Cataphract/internal/campaign/infra/persistence/model"
)

const managerActorName = "campaigns"

func main() {
	serverconfig.Load()
	if err := logs.Init("server", serverconfig.Conf.Log); err != nil {
		panic(err)
	}
	logs.Info("conf", zap.Any("conf", serverconfig.Conf))

	cfg, err := loadRules(serverconfig.Conf.App.RulesFile)
	if err != nil {
		logs.Fatal("load rules failed", zap.Error(err))
	}

	repo, cleanup, err := openStore(serverconfig.Conf)
	if err != nil {
		logs.Fatal("open store failed", zap.Error(err))
	}
	defer cleanup()

	baseLogger := logx.NewZapLogger(logs.Logger())
	hub := ws.NewHub(baseLogger)
	broadcast := func(campaignID entity.CampaignID, event any) {
		hub.Broadcast(strconv.Itoa(int(campaignID)), event)
	}

	system := protoactor.NewActorSystem()
	root := system.Root
	props := protoactor.PropsFromProducer(func() protoactor.Actor {
		return actors.NewManagerActor(repo, cfg, broadcast)
	})
	managerPID, err := root.SpawnNamed(props, managerActorName)
	if err != nil {
		logs.Fatal("spawn campaign manager failed", zap.Error(err))
	}

	httpHost := serverconfig.Conf.HTTPServer.Host
	if httpHost == "" {
		httpHost = "0.0.0.0"
	}
	httpAddr := fmt.Sprintf("%s:%d", httpHost, serverconfig.Conf.HTTPServer.Port)

	askTimeout := time.Duration(serverconfig.Conf.Tick.AskTimeoutS) * time.Second
	campaignModule := campaigninterfaces.New(root, managerPID, repo, hub, askTimeout)

	httpServer := transporthttp.NewHttpServer(httpAddr, nil, baseLogger)
	campaignModule.HttpRegister(httpServer.Group())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startScheduler(ctx, root, managerPID, repo, askTimeout)

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- fmt.Errorf("campaign server start failed: %w", err)
			return
		}
		errCh <- nil
	}()

	logs.Info("campaign server started",
		zap.String("addr", httpAddr),
		zap.String("store", serverconfig.Conf.App.Store),
		zap.String("manager_pid", managerPID.String()),
	)

	select {
	case <-ctx.Done():
		logs.Info("收到退出信号，准备优雅退出")
	case err := <-errCh:
		if err != nil {
			logs.Error("服务异常退出", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
	system.Shutdown()
}

func loadRules(path string) (*rules.Config, error) {
	if path == "" {
		return rules.Default(), nil
	}
	return rules.Load(path)
}

// openStore 按配置选仓储实现：mysql / mongodb / memory。
func openStore(conf serverconfig.Config) (port.CampaignRepository, func(), error) {
	noop := func() {}
	switch conf.App.Store {
	case "mysql":
		gdb, err := db.Open(conf.MySQL)
		if err != nil {
			return nil, noop, err
		}
		if err := gdb.AutoMigrate(&campaignmodel.CampaignRow{}); err != nil {
			return nil, noop, err
		}
		return campaignmysql.NewCampaignRepo(gdb), noop, nil
	case "mongodb":
		client, err := sharedmongo.Open(conf.MongoDB, logs.Logger())
		if err != nil {
			return nil, noop, err
		}
		cleanup := func() {
			_ = client.Disconnect(context.Background())
		}
		database := client.Database(conf.MongoDB.Database)
		return campaignmongo.NewCampaignRepo(database), cleanup, nil
	case "memory", "":
		return campaignmemory.NewCampaignRepo(), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown store %q", conf.App.Store)
	}
}

// startScheduler 按墙钟间隔自动推进所有进行中的战役。
// 推进请求进 actor 邮箱排队，天然保证每个战役同时只有一次推进在跑。
func startScheduler(ctx context.Context, root *protoactor.RootContext, manager *protoactor.PID, repo port.CampaignRepository, askTimeout time.Duration) {
	intervalS := serverconfig.Conf.Tick.IntervalS
	if intervalS <= 0 {
		logs.Info("tick scheduler disabled")
		return
	}
	if askTimeout <= 0 {
		askTimeout = 10 * time.Second
	}
	interval := time.Duration(intervalS) * time.Second

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				advanceActiveCampaigns(root, manager, repo, askTimeout)
			}
		}
	}()
}

func advanceActiveCampaigns(root *protoactor.RootContext, manager *protoactor.PID, repo port.CampaignRepository, askTimeout time.Duration) {
	listCtx, cancel := context.WithTimeout(context.Background(), askTimeout)
	defer cancel()

	summaries, err := repo.List(listCtx)
	if err != nil {
		logs.Error("list campaigns for scheduler failed", zap.Error(err))
		return
	}

	for _, s := range summaries {
		if s.Status != "active" {
			continue
		}
		msg := actors.AdvanceDays{Routing: actors.Route(s.ID), Days: 1}
		if _, err := root.RequestFuture(manager, msg, askTimeout).Result(); err != nil {
			logs.Error("scheduled tick failed",
				zap.Int("campaign_id", int(s.ID)),
				zap.Error(err),
			)
		}
	}
}
