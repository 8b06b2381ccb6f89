package storage

import (
	"github.com/veertradingvadi-ship-it/laboros-sub001/storage/database"
	"github.com/veertradingvadi-ship-it/laboros-sub001/storage/redis"
	"github.com/veertradingvadi-ship-it/laboros-sub001/storage/mq"
)

//统一 init storage 层

func Init() error {
	 if err := database.Init(); err != nil {
		return err
	 }

	 if err := redis.Init(); err != nil {
		return err
	 }

	 if err := mq.Init(); err != nil {
		return err
	}


	return nil
}