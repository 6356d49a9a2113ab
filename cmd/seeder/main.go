package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

// Client is the body posted to /clientes.
type Client struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"nombre"`
}

// Equipment is the body posted to /equipos.
type Equipment struct {
	ID             string  `json:"id,omitempty"`
	Model          string  `json:"modelo"`
	SerialNumber   string  `json:"numero_serie"`
	ClientID       string  `json:"cliente_id"`
	Periodicity    string  `json:"periodicidad"`
	FirstServiceOn string  `json:"fecha_primer_servicio"`
	UnderWarranty  bool    `json:"en_garantia"`
	WarrantyEndsOn *string `json:"fecha_fin_garantia,omitempty"`
}

var clientNames = []string{
	"Hospital Central",
	"Clinica San Rafael",
	"Centro Medico del Norte",
	"Hospital Infantil",
	"Laboratorio Diagnostico Sur",
	"Sanatorio Santa Maria",
}

var equipmentModels = []string{
	"Monitor de signos vitales MX450",
	"Desfibrilador LifePak 20",
	"Ventilador Hamilton C3",
	"Bomba de infusion Alaris",
	"Electrocardiografo MAC 2000",
	"Autoclave Tuttnauer 3870",
	"Ecografo Logiq P9",
}

var periodicities = []string{"mensual", "bimensual", "trimestral", "cuatrimestral", "semestral", "anual"}

var httpClient = &http.Client{Timeout: 10 * time.Second}

func postJSON(url string, body, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	resp, err := httpClient.Post(url, "application/json", bytes.NewBuffer(data))
	if err != nil {
		return fmt.Errorf("failed to post to %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Detail string `json:"detail"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return fmt.Errorf("request to %s failed with status %d: %s", url, resp.StatusCode, apiErr.Detail)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func createClient(apiURL, name string) (string, error) {
	var created Client
	if err := postJSON(apiURL+"/clientes", Client{Name: name}, &created); err != nil {
		return "", err
	}
	if created.ID == "" {
		return "", fmt.Errorf("invalid client ID in response")
	}
	log.WithFields(log.Fields{"cliente_id": created.ID, "nombre": name}).Info("Created client")
	return created.ID, nil
}

func createEquipment(apiURL string, e Equipment) (string, error) {
	var created Equipment
	if err := postJSON(apiURL+"/equipos", e, &created); err != nil {
		return "", err
	}
	if created.ID == "" {
		return "", fmt.Errorf("invalid equipment ID in response")
	}
	log.WithFields(log.Fields{
		"equipo_id":    created.ID,
		"modelo":       e.Model,
		"periodicidad": e.Periodicity,
	}).Info("Created equipment")
	return created.ID, nil
}

// randomEquipment builds equipment whose first service falls within the last
// year, so the generated schedules overlap today.
func randomEquipment(rng *rand.Rand, clientID string, today time.Time, n int) Equipment {
	first := today.AddDate(0, 0, -rng.Intn(365))
	e := Equipment{
		Model:          equipmentModels[rng.Intn(len(equipmentModels))],
		SerialNumber:   fmt.Sprintf("SN-%s-%04d", first.Format("0601"), n),
		ClientID:       clientID,
		Periodicity:    periodicities[rng.Intn(len(periodicities))],
		FirstServiceOn: first.Format("2006-01-02"),
		UnderWarranty:  rng.Intn(2) == 0,
	}
	if e.UnderWarranty {
		end := today.AddDate(1+rng.Intn(3), 0, 0).Format("2006-01-02")
		e.WarrantyEndsOn = &end
	}
	return e
}

type seedResult struct {
	Clients   int
	Equipment int
	Failed    int
}

// seed creates clients and their equipment through the API. Failures are
// logged and counted; seeding continues with the next item.
func seed(apiURL string, clients, perClient int, rng *rand.Rand, today time.Time) seedResult {
	var res seedResult
	for i := 0; i < clients; i++ {
		name := clientNames[i%len(clientNames)]
		if i >= len(clientNames) {
			name = fmt.Sprintf("%s %d", name, i/len(clientNames)+1)
		}
		clientID, err := createClient(apiURL, name)
		if err != nil {
			log.WithError(err).Error("Failed to create client")
			res.Failed++
			continue
		}
		res.Clients++

		for j := 0; j < perClient; j++ {
			e := randomEquipment(rng, clientID, today, res.Equipment+res.Failed+1)
			if _, err := createEquipment(apiURL, e); err != nil {
				log.WithError(err).Error("Failed to create equipment")
				res.Failed++
				continue
			}
			res.Equipment++
		}
	}
	return res
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func main() {
	apiURL := os.Getenv("API_BASE_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080/api"
	}
	clients := envInt("SEED_CLIENTS", 3)
	perClient := envInt("SEED_EQUIPMENT_PER_CLIENT", 2)

	log.WithFields(log.Fields{
		"api_url":    apiURL,
		"clients":    clients,
		"per_client": perClient,
	}).Info("Seeding demo data")

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	res := seed(apiURL, clients, perClient, rng, time.Now())

	log.WithFields(log.Fields{
		"clients":   res.Clients,
		"equipment": res.Equipment,
		"failed":    res.Failed,
	}).Info("Seeding completed")
	if res.Failed > 0 {
		os.Exit(1)
	}
}
