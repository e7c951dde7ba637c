package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/JusFlow/datajud-service/internal/api/consulta"
	"github.com/JusFlow/datajud-service/internal/config"
	"github.com/JusFlow/datajud-service/internal/datajud"
	"github.com/JusFlow/datajud-service/internal/exporters"
	"github.com/JusFlow/datajud-service/internal/storage"
	"github.com/JusFlow/datajud-service/internal/types"
	"github.com/JusFlow/datajud-service/internal/utils"
)

func main() {
	// Command line flags
	tribunal := flag.String("tribunal", "", "Tribunal alias (e.g. trf1, tjsp)")
	arquivo := flag.String("file", "processos.txt", "Path to a file with one process number per line")
	formato := flag.String("formato", "csv", "Export format: pdf, csv, excel or json")
	saida := flag.String("out", "", "Output path (default: generated filename in the current directory)")
	titulo := flag.String("titulo", "", "Report title used by the PDF header")
	semMovimentos := flag.Bool("sem-movimentos", false, "Leave the movement history out of the export")
	semAssuntos := flag.Bool("sem-assuntos", false, "Leave the subjects out of the export")
	flag.Parse()

	if *tribunal == "" {
		fmt.Println("Error: tribunal is required. Use -tribunal flag")
		flag.Usage()
		os.Exit(1)
	}

	// .env carries DATAJUD_API_KEY and friends outside containers.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := utils.InitLogger(cfg.LogLevel, cfg.Environment); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = utils.Zlog.Sync()
	}()

	formatoExportacao := types.FormatoExportacao(strings.ToLower(strings.TrimSpace(*formato)))
	exporter, err := exporters.ForFormat(formatoExportacao)
	if err != nil {
		utils.Zlog.Fatal("Unknown export format", zap.String("formato", *formato), zap.Error(err))
	}

	utils.Zlog.Info("Loading process numbers", zap.String("file", *arquivo))
	numeros, err := lerNumeros(*arquivo)
	if err != nil {
		utils.Zlog.Fatal("Failed to load process numbers", zap.Error(err))
	}
	if len(numeros) == 0 {
		utils.Zlog.Fatal("Input file has no process numbers", zap.String("file", *arquivo))
	}
	utils.Zlog.Info("Loaded process numbers", zap.Int("count", len(numeros)))

	client := datajud.NewClient(cfg.DataJudBaseURL, cfg.DataJudAPIKey, cfg.DataJudTimeout)
	if client.Mode() == datajud.ModoDemonstracao {
		utils.Zlog.Warn("DATAJUD_API_KEY not set, lookups are limited to fixture data")
	}

	store := storage.NewMemoryStore(cfg.HistoryLimit)
	defer store.Close()

	service := consulta.NewService(client, store, cfg)

	resultados, err := service.ConsultarLote(context.Background(), *tribunal, numeros)
	if err != nil {
		utils.Zlog.Fatal("Bulk lookup failed", zap.Error(err))
	}

	processos := make([]types.Processo, 0, len(resultados))
	for _, resultado := range resultados {
		if resultado.Status == types.StatusSucesso && resultado.Processo != nil {
			processos = append(processos, *resultado.Processo)
			continue
		}
		utils.Zlog.Warn("Process left out of the export",
			zap.String("numeroProcesso", resultado.NumeroProcesso),
			zap.String("status", string(resultado.Status)),
			zap.String("erro", resultado.Erro))
	}

	opcoes := types.OpcoesExportacao{
		Titulo:            *titulo,
		IncluirMovimentos: !*semMovimentos,
		IncluirAssuntos:   !*semAssuntos,
	}
	dados, err := exporters.Export(formatoExportacao, processos, opcoes)
	if err != nil {
		utils.Zlog.Fatal("Export failed", zap.Error(err))
	}

	destino := *saida
	if destino == "" {
		destino = exporters.Filename(exporter)
	}
	if err := os.WriteFile(destino, dados, 0644); err != nil {
		utils.Zlog.Fatal("Failed to write output file", zap.String("path", destino), zap.Error(err))
	}

	sucessos, erros, naoEncontrados := consulta.ContarResultados(resultados)
	utils.Zlog.Info("Export written",
		zap.String("path", destino),
		zap.Int("bytes", len(dados)),
		zap.Int("sucessos", sucessos),
		zap.Int("erros", erros),
		zap.Int("naoEncontrados", naoEncontrados))
}

// lerNumeros reads process numbers from a plain list (one per line, blank
// lines and #-comments skipped) or from a CSV file when the extension says
// so. Numbers keep whatever CNJ punctuation the file uses.
func lerNumeros(caminho string) ([]string, error) {
	if strings.EqualFold(filepath.Ext(caminho), ".csv") {
		return lerNumerosCSV(caminho)
	}

	f, err := os.Open(caminho)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var numeros []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		linha := strings.TrimSpace(scanner.Text())
		if linha == "" || strings.HasPrefix(linha, "#") {
			continue
		}
		numeros = append(numeros, linha)
	}
	return numeros, scanner.Err()
}

// lerNumerosCSV pulls the process-number column out of a CSV file. The
// column is found by header name; a file without a recognizable header is
// read as first-column data.
func lerNumerosCSV(caminho string) ([]string, error) {
	conteudo, err := os.ReadFile(caminho)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(conteudo))
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	coluna := 0
	dataRows := records
	for j, header := range records[0] {
		nome := strings.ToLower(strings.TrimSpace(header))
		if nome == "numeroprocesso" || nome == "numero" || nome == "processo" || nome == "número do processo" {
			coluna = j
			dataRows = records[1:]
			break
		}
	}

	numeros := make([]string, 0, len(dataRows))
	for _, row := range dataRows {
		if coluna >= len(row) {
			continue
		}
		valor := strings.TrimSpace(row[coluna])
		if valor == "" {
			continue
		}
		numeros = append(numeros, valor)
	}
	return numeros, nil
}
