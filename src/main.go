package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"diary-app/src/config"
	"diary-app/src/infrastructure/repository"
	"diary-app/src/interface/handler"
	"diary-app/src/logger"
	"diary-app/src/routes"
	"diary-app/src/storage"
	"diary-app/src/usecase"
	"diary-app/src/validator"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env があれば読み込む（無ければ環境変数をそのまま使う）
	godotenv.Load()

	// 設定を読み込み
	cfg := config.LoadConfig()

	// ロガーを初期化
	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.Directory); err != nil {
		panic(fmt.Sprintf("ロガーの初期化に失敗: %v", err))
	}
	defer logger.CloseLogger()

	logger.Log.Info("日記アプリを開始しています")

	// ローカルストレージを開く
	store, err := storage.NewSQLiteStore(cfg.Storage.Path, logger.Log)
	if err != nil {
		logger.Log.WithError(err).Fatal("ローカルストレージのオープンに失敗")
	}
	defer store.Close()

	// リポジトリを初期化
	diaryRepo := repository.NewDiaryRepository(store, logger.Log)
	userRepo := repository.NewUserRepository(store, logger.Log)
	draftRepo := repository.NewDraftRepository(store, logger.Log)

	// 起動時にコレクションを読み込んでおく
	if err := diaryRepo.Load(context.Background()); err != nil {
		logger.Log.WithError(err).Error("日記コレクションの読み込みに失敗")
	}

	// ユースケースを初期化
	autosaver := usecase.NewDraftAutosaver(draftRepo, logger.Log, cfg.Diary.AutoSaveDelay)
	diaryUsecase := usecase.NewDiaryUsecase(diaryRepo, autosaver)
	statsUsecase := usecase.NewStatsUsecase(diaryRepo)
	shareUsecase := usecase.NewShareUsecase(diaryRepo, logger.Log)
	userUsecase := usecase.NewUserUsecase(userRepo)

	// バリデーターとハンドラーを初期化
	cv := validator.NewCustomValidator()
	handlers := &routes.Handlers{
		Diary: handler.NewDiaryHandler(diaryUsecase, cv, logger.Log),
		Stats: handler.NewStatsHandler(statsUsecase, logger.Log),
		Share: handler.NewShareHandler(shareUsecase, logger.Log),
		User:  handler.NewUserHandler(userUsecase, cv, logger.Log),
		Draft: handler.NewDraftHandler(autosaver, cv, logger.Log),
	}

	// Ginルーターを初期化
	r := gin.New()
	r.Use(gin.Recovery())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	routes.SetupRoutes(r, handlers, cfg)

	// ヘルスチェック用のエンドポイント
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	// サーバーをgoroutineで起動
	go func() {
		logger.Log.WithField("port", cfg.Server.Port).Info("サーバーを起動します")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("サーバーの起動に失敗")
		}
	}()

	// シグナルを待ってグレースフルシャットダウン
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("サーバーを停止しています")

	// 保留中の下書きをベストエフォートで書き出す
	if err := autosaver.Flush(context.Background()); err != nil {
		logger.Log.WithError(err).Error("終了時の下書き保存に失敗")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.WithError(err).Error("サーバーの強制終了")
	}

	logger.Log.Info("サーバーを終了しました")
}
