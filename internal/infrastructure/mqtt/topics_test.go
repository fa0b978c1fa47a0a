package mqtt

import "testing"

func TestTopicBuilders(t *testing.T) {
	tests := []struct {
		name     string
		builder  func() string
		expected string
	}{
		{
			name: "Intent",
			builder: func() string {
				return Topics{}.Intent("domi:tonraumMusic")
			},
			expected: "hermes/intent/domi:tonraumMusic",
		},
		{
			name: "AllIntents",
			builder: func() string {
				return Topics{}.AllIntents()
			},
			expected: "hermes/intent/#",
		},
		{
			name: "DialogueEndSession",
			builder: func() string {
				return Topics{}.DialogueEndSession()
			},
			expected: "hermes/dialogueManager/endSession",
		},
		{
			name: "DialogueStartSession",
			builder: func() string {
				return Topics{}.DialogueStartSession()
			},
			expected: "hermes/dialogueManager/startSession",
		},
		{
			name: "DialogueContinueSession",
			builder: func() string {
				return Topics{}.DialogueContinueSession()
			},
			expected: "hermes/dialogueManager/continueSession",
		},
		{
			name: "SessionStarted",
			builder: func() string {
				return Topics{}.SessionStarted()
			},
			expected: "hermes/dialogueManager/sessionStarted",
		},
		{
			name: "SessionEnded",
			builder: func() string {
				return Topics{}.SessionEnded()
			},
			expected: "hermes/dialogueManager/sessionEnded",
		},
		{
			name: "InjectionPerform",
			builder: func() string {
				return Topics{}.InjectionPerform()
			},
			expected: "hermes/injection/perform",
		},
		{
			name: "InjectionComplete",
			builder: func() string {
				return Topics{}.InjectionComplete()
			},
			expected: "hermes/injection/complete",
		},
		{
			name: "SiteRequest",
			builder: func() string {
				return Topics{}.SiteRequest("kitchen", OpServiceStart)
			},
			expected: "squeezebox/request/oneSite/kitchen/serviceStart",
		},
		{
			name: "AllSitesRequest",
			builder: func() string {
				return Topics{}.AllSitesRequest(OpSiteInfo)
			},
			expected: "squeezebox/request/allSites/siteInfo",
		},
		{
			name: "SqueezeboxAnswer",
			builder: func() string {
				return Topics{}.SqueezeboxAnswer(OpSiteInfo)
			},
			expected: "squeezebox/answer/siteInfo",
		},
		{
			name: "AllSqueezeboxAnswers",
			builder: func() string {
				return Topics{}.AllSqueezeboxAnswers()
			},
			expected: "squeezebox/answer/#",
		},
		{
			name: "BluetoothRequest",
			builder: func() string {
				return Topics{}.BluetoothRequest("kitchen", OpDeviceConnect)
			},
			expected: "bluetooth/request/oneSite/kitchen/deviceConnect",
		},
		{
			name: "BluetoothAnswer",
			builder: func() string {
				return Topics{}.BluetoothAnswer(OpDeviceDisconnect)
			},
			expected: "bluetooth/answer/deviceDisconnect",
		},
		{
			name: "AllBluetoothAnswers",
			builder: func() string {
				return Topics{}.AllBluetoothAnswers()
			},
			expected: "bluetooth/answer/#",
		},
		{
			name: "SystemStatus",
			builder: func() string {
				return Topics{}.SystemStatus()
			},
			expected: "tonraum/system/status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.builder()
			if result != tt.expected {
				t.Errorf("%s() = %q, want %q", tt.name, result, tt.expected)
			}
		})
	}
}
