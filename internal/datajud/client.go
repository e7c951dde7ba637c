package datajud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/JusFlow/datajud-service/internal/tribunais"
	"github.com/JusFlow/datajud-service/internal/types"
	"github.com/JusFlow/datajud-service/internal/utils"
	"go.uber.org/zap"
)

// Mode selects between real DataJud calls and canned demo answers.
type Mode string

const (
	ModoProducao     Mode = "producao"
	ModoDemonstracao Mode = "demo"
)

const (
	// DefaultPesquisaSize caps how many hits a filtered search asks for when
	// the caller does not choose a size.
	DefaultPesquisaSize = 20
	// MaxPesquisaSize is the hard ceiling for a single filtered search.
	MaxPesquisaSize = 100
)

// searchRequest is the payload posted to a tribunal's _search endpoint.
type searchRequest struct {
	Query map[string]interface{} `json:"query"`
	Size  int                    `json:"size"`
	From  int                    `json:"from,omitempty"`
}

// searchResponse carries the slice of the Elasticsearch reply we care about.
type searchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source rawProcesso `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Client talks to the DataJud public API. One lookup is exactly one POST;
// retries and backoff are deliberately left to callers.
type Client struct {
	baseURL string
	apiKey  string
	mode    Mode
	client  *http.Client
}

// NewClient builds a DataJud client. An empty API key switches the client
// into demo mode, where sentinel process numbers resolve to fixture records
// and everything else fails fast without touching the network.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	mode := ModoProducao
	if apiKey == "" {
		mode = ModoDemonstracao
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		mode:    mode,
		client:  &http.Client{Timeout: timeout},
	}
}

// Mode reports whether the client is in production or demo mode.
func (c *Client) Mode() Mode {
	return c.mode
}

// BuscarProcesso fetches a single process by its CNJ number. The number may
// arrive formatted (NNNNNNN-DD.AAAA.J.TR.OOOO); everything but digits is
// stripped before the query. Zero hits map to ErrProcessoNaoEncontrado.
func (c *Client) BuscarProcesso(ctx context.Context, tribunal, numeroProcesso string) (*types.Processo, error) {
	alias, err := tribunais.Resolve(tribunal)
	if err != nil {
		return nil, err
	}

	numero := utils.SomenteDigitos(numeroProcesso)
	if numero == "" {
		return nil, fmt.Errorf("número de processo inválido: %q", numeroProcesso)
	}

	if c.mode == ModoDemonstracao {
		if p, ok := demoProcesso(numero, alias); ok {
			return p, nil
		}
		return nil, ErrModoDemonstracao
	}

	reqBody := searchRequest{
		Query: map[string]interface{}{
			"match": map[string]interface{}{
				"numeroProcesso": numero,
			},
		},
		Size: 1,
	}

	searchResp, err := c.search(ctx, alias, reqBody)
	if err != nil {
		return nil, err
	}

	if len(searchResp.Hits.Hits) == 0 {
		return nil, ErrProcessoNaoEncontrado
	}

	processo := normalizeProcesso(searchResp.Hits.Hits[0].Source, numero, alias)
	return &processo, nil
}

// PesquisarProcessos runs a filtered search against one tribunal. Filters are
// combined with AND semantics; an empty filter lists the most recent slice of
// the tribunal's acervo.
func (c *Client) PesquisarProcessos(ctx context.Context, tribunal string, filtro types.Filtro) ([]types.Processo, error) {
	alias, err := tribunais.Resolve(tribunal)
	if err != nil {
		return nil, err
	}

	if c.mode == ModoDemonstracao {
		return nil, ErrModoDemonstracao
	}

	size := filtro.Tamanho
	if size <= 0 {
		size = DefaultPesquisaSize
	}
	if size > MaxPesquisaSize {
		size = MaxPesquisaSize
	}

	reqBody := searchRequest{
		Query: buildQuery(filtro),
		Size:  size,
	}

	searchResp, err := c.search(ctx, alias, reqBody)
	if err != nil {
		return nil, err
	}

	processos := make([]types.Processo, 0, len(searchResp.Hits.Hits))
	for _, hit := range searchResp.Hits.Hits {
		processos = append(processos, normalizeProcesso(hit.Source, "", alias))
	}
	return processos, nil
}

// buildQuery assembles the Elasticsearch bool query for a filtered search.
func buildQuery(filtro types.Filtro) map[string]interface{} {
	must := make([]map[string]interface{}, 0, 4)

	if filtro.ClasseCodigo > 0 {
		must = append(must, map[string]interface{}{
			"match": map[string]interface{}{"classe.codigo": filtro.ClasseCodigo},
		})
	}
	if filtro.OrgaoJulgador != "" {
		must = append(must, map[string]interface{}{
			"match": map[string]interface{}{"orgaoJulgador.nome": filtro.OrgaoJulgador},
		})
	}
	if filtro.Texto != "" {
		must = append(must, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  filtro.Texto,
				"fields": []string{"classe.nome", "assuntos.nome", "orgaoJulgador.nome"},
			},
		})
	}
	if filtro.AjuizadoApos != "" || filtro.AjuizadoAntes != "" {
		intervalo := map[string]interface{}{}
		if filtro.AjuizadoApos != "" {
			intervalo["gte"] = filtro.AjuizadoApos
		}
		if filtro.AjuizadoAntes != "" {
			intervalo["lte"] = filtro.AjuizadoAntes
		}
		must = append(must, map[string]interface{}{
			"range": map[string]interface{}{"dataAjuizamento": intervalo},
		})
	}

	if len(must) == 0 {
		return map[string]interface{}{"match_all": map[string]interface{}{}}
	}

	return map[string]interface{}{
		"bool": map[string]interface{}{"must": must},
	}
}

// search posts one query to the tribunal's endpoint and decodes the reply.
func (c *Client) search(ctx context.Context, alias string, reqBody searchRequest) (*searchResponse, error) {
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/api_publica_%s/_search", c.baseURL, alias)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "APIKey "+c.apiKey)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	utils.Zlog.Debug("DataJud search completed",
		zap.String("tribunal", alias),
		zap.Int("hits", len(searchResp.Hits.Hits)),
		zap.Duration("duration", time.Since(start)))

	return &searchResp, nil
}
