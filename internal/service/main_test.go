package service

import (
	"os"
	"testing"

	"github.com/veertradingvadi-ship-it/laboros-sub001/pkg/logger"
	"github.com/veertradingvadi-ship-it/laboros-sub001/pkg/snowflake"
	"github.com/veertradingvadi-ship-it/laboros-sub001/pkg/token"
)

func TestMain(m *testing.M) {
	logger.Init()

	if err := snowflake.Init(1, 1); err != nil {
		panic(err)
	}
	if err := token.Init(); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}
