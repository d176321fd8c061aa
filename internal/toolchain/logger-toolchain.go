package toolchain

import "github.com/cbuildtools/incdirs/internal/common"

// anywhere in the toolchain code, use logTc.Info() and other methods for logging
var logTc *common.LoggerWrapper

func MakeLoggerToolchain(logFile string, verbosity int64, noLogsIfEmpty bool) error {
	var err error
	logTc, err = common.MakeLogger(logFile, verbosity, noLogsIfEmpty, true)
	return err
}
