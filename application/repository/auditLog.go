package repository

import (
	"sync"

	"lifex.health/entities"
	"lifex.health/infrastructure/database/connection/datastore"
	"lifex.health/infrastructure/database/repository/mongo"
)

var auditLogOnce = sync.Once{}

var auditLogRepository mongo.MongoRepository[entities.AuditLog]

func AuditLogRepo() *mongo.MongoRepository[entities.AuditLog] {
	auditLogOnce.Do(func() {
		auditLogRepository = mongo.MongoRepository[entities.AuditLog]{Model: datastore.AuditLogModel}
	})
	return &auditLogRepository
}
