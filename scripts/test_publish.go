//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CommuteRequestEvent struct {
	RequestID          uuid.UUID `json:"request_id"`
	OriginPostcode     string    `json:"origin_postcode"`
	DestinationAddress string    `json:"destination_address"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	from := flag.String("from", "BR76PT", "Origin postcode")
	to := flag.String("to", "SW1W 0DT", "Destination address")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	event := CommuteRequestEvent{
		RequestID:          uuid.New(),
		OriginPostcode:     *from,
		DestinationAddress: *to,
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	// ответ ищем только среди сообщений после публикации
	lastID := "0"
	if last, err := client.XRevRangeN(ctx, "stream:commute:done", "+", "-", 1).Result(); err == nil && len(last) > 0 {
		lastID = last[0].ID
	}

	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "stream:commute:request",
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: stream:commute:request\n")
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Request ID: %s\n", event.RequestID)
	fmt.Printf("   From: %s  To: %s\n", event.OriginPostcode, event.DestinationAddress)

	fmt.Printf("\nWaiting for response in stream:commute:done...\n")

	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		streams, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{"stream:commute:done", lastID},
			Count:   10,
			Block:   time.Second,
		}).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			log.Fatalf("Failed to read responses: %v", err)
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				lastID = msg.ID

				dataStr, ok := msg.Values["data"].(string)
				if !ok {
					continue
				}

				var response map[string]interface{}
				if err := json.Unmarshal([]byte(dataStr), &response); err != nil {
					continue
				}

				if id, _ := response["request_id"].(string); id == event.RequestID.String() {
					fmt.Printf("\nResponse received\n")
					prettyJSON, _ := json.MarshalIndent(response, "", "  ")
					fmt.Printf("%s\n", prettyJSON)
					return
				}
			}
		}
	}

	fmt.Println("Timeout waiting for response")
}
