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

// CarRequest is the registration payload for POST /cars/.
type CarRequest struct {
	Plate      string `json:"plate"`
	CarType    string `json:"car_type"`
	OwnerName  string `json:"owner_name"`
	OwnerPhone string `json:"owner_phone"`
}

// AssignmentRequest is the payload for POST /assignments/.
type AssignmentRequest struct {
	CarPlate     string `json:"car_plate"`
	EmployeeName string `json:"employee_name"`
	ServiceType  string `json:"service_type"`
}

var (
	carTypes  = []string{"sedan", "SUV", "pickup", "hatchback", "van"}
	owners    = []string{"Maria Lopez", "David Chen", "Aisha Khan", "Tom Becker", "Lucia Prieto", "Sam Ortiz"}
	employees = []string{"Carlos", "Jenny", "Pablo", "Rita"}
	services  = []string{"basic wash", "full wash", "wax and polish", "interior detail"}
)

func randomPlate() string {
	letters := "ABCDEFGHJKLMNPRSTUVWXYZ"
	plate := make([]byte, 3)
	for i := range plate {
		plate[i] = letters[rand.Intn(len(letters))]
	}
	return fmt.Sprintf("%s-%03d", plate, rand.Intn(1000))
}

func postJSON(url string, payload interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Post(url, "application/json", bytes.NewBuffer(data))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return result, nil
}

func completeAssignment(baseURL, id string) error {
	req, err := http.NewRequest(http.MethodPut, baseURL+"/assignments/"+id+"/complete", nil)
	if err != nil {
		return err
	}
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	return nil
}

func main() {
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}

	carCount := 6
	if val := os.Getenv("SEED_CARS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			carCount = n
		}
	}

	log.WithFields(log.Fields{"base_url": baseURL, "cars": carCount}).Info("Seeding car wash data")

	pendingIDs := []string{}
	for i := 0; i < carCount; i++ {
		car := CarRequest{
			Plate:      randomPlate(),
			CarType:    carTypes[rand.Intn(len(carTypes))],
			OwnerName:  owners[rand.Intn(len(owners))],
			OwnerPhone: fmt.Sprintf("555-%04d", rand.Intn(10000)),
		}
		if _, err := postJSON(baseURL+"/cars/", car); err != nil {
			log.WithError(err).Error("Failed to register car")
			continue
		}
		log.WithFields(log.Fields{"plate": car.Plate, "owner": car.OwnerName}).Info("Registered car")

		washes := 1 + rand.Intn(3)
		for j := 0; j < washes; j++ {
			assignment := AssignmentRequest{
				CarPlate:     car.Plate,
				EmployeeName: employees[rand.Intn(len(employees))],
				ServiceType:  services[rand.Intn(len(services))],
			}
			result, err := postJSON(baseURL+"/assignments/", assignment)
			if err != nil {
				log.WithError(err).Error("Failed to create assignment")
				continue
			}
			id, ok := result["id"].(string)
			if !ok {
				log.Error("Invalid assignment ID in response")
				continue
			}
			log.WithFields(log.Fields{"assignment_id": id, "plate": car.Plate}).Info("Created assignment")
			pendingIDs = append(pendingIDs, id)
		}
	}

	// Complete roughly half of the washes so both states show up in the demo
	completed := 0
	for _, id := range pendingIDs {
		if rand.Intn(2) == 0 {
			continue
		}
		if err := completeAssignment(baseURL, id); err != nil {
			log.WithError(err).Error("Failed to complete assignment")
			continue
		}
		completed++
	}

	log.WithFields(log.Fields{
		"assignments": len(pendingIDs),
		"completed":   completed,
	}).Info("Seeding finished")
}
