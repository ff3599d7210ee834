package main

import (
	"context"
	"time"

	"github.com/devaforgestudios-afk/takneek/ai"
	"github.com/devaforgestudios-afk/takneek/config"
	"github.com/devaforgestudios-afk/takneek/models"
	"github.com/devaforgestudios-afk/takneek/routes"
	"github.com/devaforgestudios-afk/takneek/storage"
	"github.com/devaforgestudios-afk/takneek/store"
	"github.com/devaforgestudios-afk/takneek/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.Artwork{},
		&models.CommunityPost{},
		&models.Contact{},
		&models.PageView{},
		&models.StagedUpload{},
	)

	files, err := storage.NewFileSystemStore("static", cfg.UploadDir)
	if err != nil {
		utils.Sugar.Fatalf("upload storage init failed: %v", err)
	}

	st := store.Open(db, files)
	runner := store.NewWorkerPool(cfg.ViewWorkerCount, cfg.ViewQueueSize)

	brain, err := ai.NewClient(context.Background(), cfg)
	if err != nil {
		utils.Sugar.Warnf("generative client unavailable: %v", err)
	}

	r := routes.SetupRouter(db, st, files, brain, runner)

	// Reclaim enhanced images nobody attached to an artwork
	stopSweeper := store.StartStagedSweeper(st.Staged, 5*time.Minute)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	err = utils.GraceServer(":"+cfg.AppPort, r, func() {
		stopSweeper()
		runner.Close()
		if brain != nil {
			brain.Close()
		}
		if cerr := st.Close(); cerr != nil {
			utils.Sugar.Warnf("closing store failed: %v", cerr)
		}
	})
	if err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
