package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/arrancadaroraima/inscricoes-api/config"
	"github.com/arrancadaroraima/inscricoes-api/db"
	"github.com/arrancadaroraima/inscricoes-api/handlers"
	applog "github.com/arrancadaroraima/inscricoes-api/logger"
	"github.com/arrancadaroraima/inscricoes-api/mailer"
	mw "github.com/arrancadaroraima/inscricoes-api/middleware"
	"github.com/arrancadaroraima/inscricoes-api/pagamento"
	"github.com/arrancadaroraima/inscricoes-api/pipeline"
	"github.com/arrancadaroraima/inscricoes-api/planilha"
	"github.com/arrancadaroraima/inscricoes-api/sheets"
	"github.com/arrancadaroraima/inscricoes-api/store"
)

func main() {
	cfg := config.Load()
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	bdb := db.Setup(cfg)
	defer bdb.Close()

	if err := db.CreateTables(context.Background(), bdb); err != nil {
		logger.Fatal("create tables failed", zap.Error(err))
	}

	contas := store.NewContas(bdb)
	eventos := store.NewEventos(bdb)
	pendentes := store.NewPendentes(bdb)
	inscricoes := store.NewInscricoes(bdb)

	provider, err := pagamento.NewMercadoPago(cfg.MPAccessToken, cfg.SiteURL, cfg.BaseURL+"/webhook")
	if err != nil {
		logger.Fatal("mercado pago setup failed", zap.Error(err))
	}

	var correio *mailer.Mailer
	if cfg.MailEnabled() {
		correio = mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	} else {
		logger.Warn("outbound mail not configured, verification and tickets disabled")
	}

	var exportador pipeline.Exportador
	if cfg.SheetsEnabled() {
		sc, err := sheets.New(context.Background(), cfg.SheetsCredentialsFile, cfg.SheetsSpreadsheetID)
		if err != nil {
			logger.Fatal("sheets setup failed", zap.Error(err))
		}
		exportador = sc
	} else {
		logger.Warn("google sheets not configured, remote export disabled")
	}

	opts := pipeline.Opcoes{
		Provider:   provider,
		Pendentes:  pendentes,
		Inscricoes: inscricoes,
		Artefato:   planilha.Arquivo{Caminho: cfg.PlanilhaPath},
		Exportador: exportador,
		Log:        logger,
	}
	if correio != nil {
		opts.Enviador = correio
	}
	confirmador := pipeline.New(opts)

	deps := handlers.Deps{
		Contas:       contas,
		Eventos:      eventos,
		Pendentes:    pendentes,
		Inscricoes:   inscricoes,
		Provider:     provider,
		Confirmador:  confirmador,
		JWTKey:       cfg.JWTKey(),
		AdminEmail:   cfg.AdminEmail,
		AdminSenha:   cfg.AdminSenha,
		Preco:        cfg.PrecoInscricao,
		PendenteTTL:  cfg.PendenteTTL,
		BaseURL:      cfg.BaseURL,
		SiteURL:      cfg.SiteURL,
		PlanilhaPath: cfg.PlanilhaPath,
	}
	if correio != nil {
		deps.Verificacao = correio
	}
	h := handlers.New(deps)

	// Abandoned intents eventually expire; sweep them out hourly.
	go limparPendentes(pendentes, logger)

	e := echo.New()
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.Int("status", v.Status),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			switch {
			case v.Status >= 500:
				logger.Error("http request", fields...)
			case v.Status >= 400:
				logger.Warn("http request", fields...)
			default:
				logger.Info("http request", fields...)
			}
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"*", "Authorization"},
		AllowCredentials: true,
	}))

	// Public
	e.POST("/criar-pagamento", h.CriarPagamento)
	e.POST("/webhook", h.Webhook)
	e.POST("/login", h.Login)
	e.POST("/criar-conta", h.CriarConta)
	e.POST("/cadastrar", h.CriarConta)
	e.GET("/verificar-email", h.VerificarEmail)
	e.GET("/inscritos", h.Inscritos)
	e.GET("/api/eventos", h.ListarEventos)

	// Admin – require valid JWT with the admin type
	admin := e.Group("", mw.JWT(cfg.JWTKey()), mw.Admin())
	admin.POST("/api/eventos", h.CriarEvento)
	admin.PUT("/api/eventos/:id", h.AtualizarEvento)
	admin.DELETE("/api/eventos/:id", h.DeletarEvento)
	admin.GET("/inscritos/planilha", h.BaixarPlanilha)

	if cfg.Debug {
		logger.Info("starting server", zap.String("mode", "debug"), zap.String("addr", cfg.Port))
		if err := e.Start(cfg.Port); err != nil {
			logger.Fatal("server exited", zap.Error(err))
		}
		return
	}

	autoTLS := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		Cache:      autocert.DirCache(".cache"),
		HostPolicy: autocert.HostWhitelist(cfg.TLSDomains...),
	}

	s := &http.Server{
		Addr:         ":443",
		Handler:      e,
		TLSConfig:    autoTLS.TLSConfig(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	if err := s.ListenAndServeTLS("", ""); err != http.ErrServerClosed {
		logger.Error("tls server exited", zap.Error(err))
		os.Exit(1)
	}
}

func limparPendentes(pendentes store.Pendentes, logger *zap.Logger) {
	for range time.Tick(time.Hour) {
		n, err := pendentes.DeleteExpired(context.Background(), time.Now())
		if err != nil {
			logger.Warn("limpar pendentes expiradas", zap.Error(err))
			continue
		}
		if n > 0 {
			logger.Info("pendentes expiradas removidas", zap.Int64("total", n))
		}
	}
}
