// import 把本地 CSV 数据集写入 MySQL 的 trend_posts 表或上传到 MinIO，
// 供 dataset.source 为 mysql / minio 的实例加载。
package main

import (
	"Trendcast/internal/api/config"
	"Trendcast/internal/model"
	"Trendcast/internal/pkg/database"
	"Trendcast/internal/pkg/dataset"
	"Trendcast/internal/pkg/logger"
	"Trendcast/internal/pkg/minio"
	"Trendcast/internal/repository"
	"context"
	"flag"
	"fmt"
	log "log/slog"
	"os"
	"time"

	"github.com/google/uuid"
)

func main() {
	if err := config.LoadConfig(); err != nil {
		log.Error("Fatal error: failed to load configuration", "err", err)
		os.Exit(1)
	}
	cfg := config.Cfg
	logger.InitLogger(cfg.Server, cfg.Logstash)

	file := flag.String("file", cfg.Dataset.Path, "CSV dataset to import")
	target := flag.String("to", "mysql", "import target: mysql or minio")
	object := flag.String("object", cfg.Dataset.Object, "object name when importing to minio")
	flag.Parse()

	ctx := context.WithValue(context.Background(), logger.TraceIDKey, "import-"+uuid.NewString())
	ctx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	var err error
	switch *target {
	case "mysql":
		err = importToMySQL(ctx, cfg, *file)
	case "minio":
		err = uploadToMinIO(ctx, cfg, *file, *object)
	default:
		err = fmt.Errorf("unknown import target %q", *target)
	}
	if err != nil {
		log.ErrorContext(ctx, "Import failed", "err", err)
		os.Exit(1)
	}
}

func loadFile(ctx context.Context, file string) ([]model.Post, error) {
	posts, err := dataset.NewCSVLoader(dataset.NewFileSource(file)).Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, fmt.Errorf("%s contains no posts", file)
	}
	return posts, nil
}

func importToMySQL(ctx context.Context, cfg *config.Config, file string) error {
	posts, err := loadFile(ctx, file)
	if err != nil {
		return err
	}

	dbCfg := cfg.DB
	db, err := database.NewGormDB(&dbCfg)
	if err != nil {
		return err
	}
	if err = database.Migrate(db); err != nil {
		return err
	}

	repo := repository.NewTrendPostRepository(db)
	if err = repo.SaveBatch(ctx, posts); err != nil {
		return err
	}
	total, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "Imported dataset into MySQL", "file", file, "posts", len(posts), "table_rows", total)
	return nil
}

func uploadToMinIO(ctx context.Context, cfg *config.Config, file, object string) error {
	if object == "" {
		return fmt.Errorf("object name is required")
	}
	// 上传前先确认文件能被解析
	if _, err := loadFile(ctx, file); err != nil {
		return err
	}

	client, err := minio.NewClient(cfg.MinIO)
	if err != nil {
		return err
	}
	if err = minio.EnsureBucket(ctx, client, cfg.MinIO.Bucket); err != nil {
		return err
	}

	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	info, err := f.Stat()
	if err != nil {
		return err
	}

	key, err := minio.UploadDataset(ctx, client, cfg.MinIO.Bucket, object, f, info.Size())
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "Uploaded dataset to MinIO", "bucket", cfg.MinIO.Bucket, "object", key)
	return nil
}
