package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
	"github.com/sirupsen/logrus"

	"github.com/bietkhonhungvandi212/framedb/internal/storage/buffer"
	"github.com/bietkhonhungvandi212/framedb/internal/storage/file"
	util "github.com/bietkhonhungvandi212/framedb/internal/utils"
)

func loadOptions(path string) (util.Options, error) {
	opts := util.DefaultOptions()
	if path == "" {
		return opts, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parse config: %w", err)
	}
	return opts, nil
}

func main() {
	configPath := flag.String("config", "", "path to TOML config file")
	flag.Parse()

	log := logrus.New()

	opts, err := loadOptions(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if level, err := logrus.ParseLevel(opts.LogLevel); err == nil {
		log.SetLevel(level)
	}

	fm, err := file.NewFileManager(opts.Path, opts.InitialPages)
	if err != nil {
		log.Fatalf("open page file: %v", err)
	}
	defer fm.Close()

	bm, err := buffer.NewManager(buffer.Config{
		PoolSize: opts.BufferPoolSize,
		Logger:   log,
	})
	if err != nil {
		log.Fatalf("create buffer manager: %v", err)
	}

	// Allocate a handful of pages, write into them, read one back.
	var pageNos []util.PageID
	for i := 0; i < 4; i++ {
		pageNo, frame, err := bm.AllocatePage(fm)
		if err != nil {
			log.Fatalf("allocate page: %v", err)
		}
		p := bm.Page(frame)
		copy(p.Data[:], fmt.Appendf(nil, "record %d in page %d", i, pageNo))
		if err := bm.UnpinPage(fm, pageNo, true); err != nil {
			log.Fatalf("unpin page %d: %v", pageNo, err)
		}
		pageNos = append(pageNos, pageNo)
	}

	frame, err := bm.ReadPage(fm, pageNos[0])
	if err != nil {
		log.Fatalf("read page %d: %v", pageNos[0], err)
	}
	log.Infof("page %d contents: %q", pageNos[0], string(bm.Page(frame).Data[:24]))
	if err := bm.UnpinPage(fm, pageNos[0], false); err != nil {
		log.Fatalf("unpin page %d: %v", pageNos[0], err)
	}

	if err := bm.FlushAll(); err != nil {
		log.Fatalf("flush: %v", err)
	}

	stats := bm.Stats()
	log.WithFields(logrus.Fields{
		"hits":       stats.Hits,
		"misses":     stats.Misses,
		"evictions":  stats.Evictions,
		"writebacks": stats.WriteBacks,
	}).Info("buffer pool stats")
}
