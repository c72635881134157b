// Package logger builds zap loggers from a declarative config that can
// come from flags or a yaml file.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Type string

const (
	// TypeFile sends entries to a single file or file-like path.
	// This is the default if the type is undefined.
	TypeFile Type = "file"
	// TypeWaterfall distributes entries across Children, each entry
	// going to the first child that accepts it.
	TypeWaterfall Type = "waterfall"
)

type Config struct {
	Type Type   `yaml:"type,omitempty"`
	Path string `yaml:"path"`
	// If Path is a file, Mode will determine how the log file is managed.
	// FileModeAppend is the default if value is undefined.
	Mode FileMode `yaml:"mode,omitempty"`
	// Name, if set, restricts this output to entries from the logger
	// with that name.
	Name     string        `yaml:"name,omitempty"`
	Level    zapcore.Level `yaml:"level"`
	Children []Config      `yaml:"children,omitempty"`
	// DevMode causes log entries at DPanicLevel to panic instead of
	// logging.
	DevMode bool `yaml:"devmode,omitempty"`
}

// New builds a logger for conf.
func New(conf Config) (*zap.Logger, error) {
	core, err := NewCore(conf)
	if err != nil {
		return nil, err
	}
	var opts []zap.Option
	if conf.DevMode {
		opts = append(opts, zap.Development())
	}
	return zap.New(core, opts...), nil
}

func NewCore(conf Config) (zapcore.Core, error) {
	switch conf.Type {
	case TypeWaterfall:
		var cores []zapcore.Core
		for _, child := range conf.Children {
			core, err := NewCore(child)
			if err != nil {
				return nil, err
			}
			cores = append(cores, core)
		}
		return NewWaterfall(cores...), nil
	case TypeFile, "":
		w, err := OpenFile(conf.Path, conf.Mode)
		if err != nil {
			return nil, err
		}
		core := zapcore.NewCore(jsonEncoder(), w, conf.Level)
		if conf.Name != "" {
			core = newNameFilterCore(core, conf.Name)
		}
		return core, nil
	default:
		return nil, fmt.Errorf("unknown logger type: %s", conf.Type)
	}
}

func jsonEncoder() zapcore.Encoder {
	conf := zap.NewProductionEncoderConfig()
	conf.CallerKey = ""
	return zapcore.NewJSONEncoder(conf)
}
