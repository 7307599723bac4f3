package startup

import (
	"lifex.health/infrastructure/biometric"
	"lifex.health/infrastructure/biometric/engine"
	"lifex.health/infrastructure/database"
	"lifex.health/infrastructure/database/connection/datastore"
	"lifex.health/infrastructure/ledger"
	"lifex.health/infrastructure/logger"
)

var faceEngine *engine.GocvFaceEngine

// Used to start services such as loggers, databases, queues, etc.
func StartServices() {
	logger.InitializeLogger()
	database.SetUpDatabase()
	ledger.InitialiseLedgerService()

	var err error
	faceEngine, err = engine.NewGocvFaceEngine(engine.ConfigFromEnv())
	if err != nil {
		logger.Error("failed to load face engine models", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		panic(err)
	}
	biometric.DefaultEngine = faceEngine
}

// Used to clean up after services that have been shutdown.
func CleanUpServices() {
	if faceEngine != nil {
		faceEngine.Close()
	}
	datastore.CleanUp()
}
