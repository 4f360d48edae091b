package logx

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger 各層が使う最小限のロギング面
type Logger interface {
	Debug(args ...interface{})
	Debugf(template string, args ...interface{})
	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Warn(args ...interface{})
	Warnf(template string, args ...interface{})
	Error(args ...interface{})
	Errorf(template string, args ...interface{})
	Fatal(args ...interface{})
	Fatalf(template string, args ...interface{})
}

// Logx zap.SugaredLogger の薄いラッパ
type Logx struct {
	level   zapcore.Level
	dev     bool
	console bool
	sugar   *zap.SugaredLogger
}

func NewLogx(lvl zapcore.Level, dev bool, console bool) *Logx {
	return &Logx{level: lvl, dev: dev, console: console}
}

var levelByName = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
	"fatal": zapcore.FatalLevel,
}

// LevelByString 不明な名前は info 扱い
func LevelByString(lvl string) zapcore.Level {
	level, ok := levelByName[lvl]
	if !ok {
		return zapcore.InfoLevel
	}
	return level
}

// InitLogger 出力先とエンコーダを組み立てる。console 指定時は標準出力に
// コンソール形式、それ以外は w に JSON で書く。
func (l *Logx) InitLogger(w io.Writer) {
	var writer zapcore.WriteSyncer
	if l.console || w == nil {
		writer = zapcore.AddSync(os.Stdout)
	} else {
		writer = zapcore.AddSync(w)
	}

	var encoderCfg zapcore.EncoderConfig
	if l.dev {
		encoderCfg = zap.NewDevelopmentEncoderConfig()
	} else {
		encoderCfg = zap.NewProductionEncoderConfig()
	}
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if l.console {
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, writer, zap.NewAtomicLevelAt(l.level))
	l.sugar = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar()
}

func (l *Logx) Debug(args ...interface{}) { l.sugar.Debug(args...) }

func (l *Logx) Debugf(tpl string, args ...interface{}) { l.sugar.Debugf(tpl, args...) }

func (l *Logx) Info(args ...interface{}) { l.sugar.Info(args...) }

func (l *Logx) Infof(tpl string, args ...interface{}) { l.sugar.Infof(tpl, args...) }

func (l *Logx) Warn(args ...interface{}) { l.sugar.Warn(args...) }

func (l *Logx) Warnf(tpl string, args ...interface{}) { l.sugar.Warnf(tpl, args...) }

func (l *Logx) Error(args ...interface{}) { l.sugar.Error(args...) }

func (l *Logx) Errorf(tpl string, args ...interface{}) { l.sugar.Errorf(tpl, args...) }

func (l *Logx) Fatal(args ...interface{}) { l.sugar.Fatal(args...) }

func (l *Logx) Fatalf(tpl string, args ...interface{}) { l.sugar.Fatalf(tpl, args...) }
