package initializers

import (
	"context"
	"recruit-portal/config"
	"recruit-portal/fiberlog"
	adminshandler "recruit-portal/lib/admins"
	applicationhandler "recruit-portal/lib/applications"
	authhandler "recruit-portal/lib/auth"
	"recruit-portal/lib/backend/client"
	candidateshandler "recruit-portal/lib/candidates"
	statusworkflow "recruit-portal/lib/candidates/workflow"
	xlsexport "recruit-portal/lib/export/xls"
	filestorage "recruit-portal/lib/file-storage"
	jobshandler "recruit-portal/lib/jobs"
	reportshandler "recruit-portal/lib/reports"
	sessionguard "recruit-portal/lib/session/guard"
	layoutshell "recruit-portal/lib/session/layout"
	sessionstore "recruit-portal/lib/session/store"
	statspoller "recruit-portal/lib/stats"
	connectionhub "recruit-portal/lib/ws/hub/connection-hub"
	candidateapimodels "recruit-portal/models/api/candidate"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	config.InitConfig()
	LoggerConfig = InitLogger()
	InitSessionStore()
	InitS3(ctx)
	connectionhub.Init()
	client.NewProvider(config.Conf.Backend.BaseURL, config.Conf.BackendTimeout())
	sessionguard.NewHandler(client.Instance, *config.Conf.Backend.ValidateToken)
	layoutshell.NewHandler(sessionguard.Instance, connectionhub.Instance, config.Conf.AutoLogoutDelay(), config.Conf.App.PublicRoute)
	authhandler.NewHandler(client.Instance, sessionguard.Instance, layoutshell.Instance, config.Conf.App.PublicRoute)
	applicationhandler.NewHandler(client.Instance)
	jobshandler.NewHandler(client.Instance, applicationhandler.Instance, connectionhub.Instance)
	candidateshandler.NewHandler(client.Instance, filestorage.Instance, config.Conf.Cache.CandidateSize, config.Conf.CandidateCacheTTL())
	statusworkflow.NewHandler(newStatusWorkflow)
	adminshandler.NewHandler(client.Instance)
	xlsexport.NewHandler()
	reportshandler.NewHandler(client.Instance, xlsexport.Instance)
	statspoller.NewHandler(client.Instance, config.Conf.StatsPollInterval())
	statspoller.Instance.Start(ctx)
}

// newStatusWorkflow окно смены статуса клиента работает с его списком кандидатов и его токеном
func newStatusWorkflow(clientID string) *statusworkflow.Workflow {
	return statusworkflow.New(statusworkflow.Config{
		ClientID: clientID,
		Backend:  client.Instance,
		List:     candidateshandler.Instance.List(clientID),
		Tokens:   sessionstore.NewCache(sessionstore.Instance, clientID),
		Notifier: connectionhub.Instance,
		OnCommitted: func(candidate candidateapimodels.Candidate) {
			candidateshandler.Instance.Invalidate(candidate.ID.String())
		},
	})
}

// ShutdownServices останавливает фоновые задачи и таймеры автовыхода
func ShutdownServices() {
	if statspoller.Instance != nil {
		statspoller.Instance.Stop()
	}
	if layoutshell.Instance != nil {
		layoutshell.Instance.Shutdown()
	}
}
