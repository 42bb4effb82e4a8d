package push

import (
	"context"
	"encoding/json"
	"errors"

	"liftlog/workout-app/internal/config"
	"liftlog/workout-app/internal/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config" // Alias config to avoid clash
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	log "github.com/sirupsen/logrus"
)

// snsDispatcher implements Dispatcher by publishing to each user's SNS
// platform endpoint. Users without a registered endpoint are skipped.
type snsDispatcher struct {
	client *sns.Client
}

// NewSNSDispatcher creates a new SNS-backed dispatcher.
func NewSNSDispatcher(cfg config.PushConfig) (Dispatcher, error) {
	loadOpts := []func(*awsCfg.LoadOptions) error{
		awsCfg.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts,
			awsCfg.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		)
	}

	awsSDKConfig, err := awsCfg.LoadDefaultConfig(context.TODO(), loadOpts...)
	if err != nil {
		log.WithError(err).Error("failed to load AWS SDK config for SNS")
		return nil, err
	}

	log.Infof("SNS push dispatcher initialized for region %s", cfg.Region)
	return &snsDispatcher{client: sns.NewFromConfig(awsSDKConfig)}, nil
}

// notification is the JSON payload delivered to the device.
type notification struct {
	Action string      `json:"action"`
	Data   interface{} `json:"data"`
}

func (d *snsDispatcher) publish(ctx context.Context, recipient *domain.User, payload notification) error {
	if recipient.PushEndpointARN == "" {
		// No device registered; nothing to deliver.
		return nil
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = d.client.Publish(ctx, &sns.PublishInput{
		TargetArn: aws.String(recipient.PushEndpointARN),
		Message:   aws.String(string(body)),
	})
	if err != nil {
		return errors.New("sns publish failed: " + err.Error())
	}
	return nil
}

func (d *snsDispatcher) SendWorkoutSharedNotification(ctx context.Context, recipient *domain.User, preview domain.SharedWorkoutInfo) error {
	return d.publish(ctx, recipient, notification{Action: "workoutShared", Data: preview})
}

func (d *snsDispatcher) SendFriendRequestNotification(ctx context.Context, recipient *domain.User, request domain.FriendRequest) error {
	return d.publish(ctx, recipient, notification{Action: "friendRequest", Data: request})
}

func (d *snsDispatcher) SendFriendRequestAcceptedNotification(ctx context.Context, recipient *domain.User, friend domain.FriendInfo) error {
	return d.publish(ctx, recipient, notification{Action: "friendRequestAccepted", Data: friend})
}
