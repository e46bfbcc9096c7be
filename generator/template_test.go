package generator

import (
	"testing"

	"gopkg.in/yaml.v3"
)

// rewriteToMap rewrites the fixture and decodes the result for inspection.
func rewriteToMap(t *testing.T, filename, content, key string) map[string]any {
	t.Helper()
	doc := parseOne(t, filename, content)
	rewritten, err := RewriteDocument(doc, key)
	if err != nil {
		t.Fatalf("Failed to rewrite: %s", err)
	}
	result := map[string]any{}
	if err := rewritten.Decode(&result); err != nil {
		t.Fatalf(unmarshalError, err)
	}
	return result
}

const deploymentFixture = `apiVersion: apps/v1
kind: Deployment
metadata:
  name: web
  namespace: prod
  labels:
    app: web
spec:
  replicas: 3
  template:
    spec:
      containers:
        - name: web
          image: nginx:1.25
          resources:
            limits:
              cpu: 100m
        - name: sidecar
          image: busybox
      volumes:
        - name: cache
          emptyDir: {}
`

func TestRewriteDeployment(t *testing.T) {
	result := rewriteToMap(t, "web.yaml", deploymentFixture, "web")

	metadata := result["metadata"].(map[string]any)
	if metadata["name"] != `{{ .Values.web.name | default "web" }}` {
		t.Errorf("Unexpected name placeholder: %v", metadata["name"])
	}
	if metadata["namespace"] != `{{ .Values.web.namespace | default "prod" }}` {
		t.Errorf("Unexpected namespace placeholder: %v", metadata["namespace"])
	}
	if metadata["labels"] != `{{ .Values.web.labels | default (dict) | toYaml | nindent 4 }}` {
		t.Errorf("Unexpected labels placeholder: %v", metadata["labels"])
	}

	spec := result["spec"].(map[string]any)
	if spec["replicas"] != `{{ .Values.web.replicas | default 3 }}` {
		t.Errorf("Unexpected replicas placeholder: %v", spec["replicas"])
	}

	containers := spec["template"].(map[string]any)["spec"].(map[string]any)["containers"].([]any)
	first := containers[0].(map[string]any)
	expectedImage := `{{ .Values.web.containers[0].repository | default "nginx" }}:{{ .Values.web.containers[0].tag | default "1.25" }}`
	if first["image"] != expectedImage {
		t.Errorf("Unexpected image placeholder: %v", first["image"])
	}
	if first["resources"] != `{{ .Values.web.containers[0].resources | default (dict) | toYaml | nindent 10 }}` {
		t.Errorf("Unexpected resources placeholder: %v", first["resources"])
	}
	second := containers[1].(map[string]any)
	expectedImage = `{{ .Values.web.containers[1].repository | default "busybox" }}:{{ .Values.web.containers[1].tag | default "latest" }}`
	if second["image"] != expectedImage {
		t.Errorf("Unexpected image placeholder: %v", second["image"])
	}

	// everything unrecognized passes through unchanged
	if result["apiVersion"] != "apps/v1" || result["kind"] != "Deployment" {
		t.Errorf("Expected apiVersion and kind to pass through")
	}
	volumes := spec["template"].(map[string]any)["spec"].(map[string]any)["volumes"].([]any)
	if volumes[0].(map[string]any)["name"] != "cache" {
		t.Errorf("Expected volumes to pass through, got %v", volumes)
	}
}

func TestRewriteDoesNotMutateInput(t *testing.T) {
	doc := parseOne(t, "web.yaml", deploymentFixture)
	if _, err := RewriteDocument(doc, "web"); err != nil {
		t.Fatalf("Failed to rewrite: %s", err)
	}
	if node := doc.Lookup("metadata", "name"); node.Value != "web" {
		t.Errorf("Expected original document untouched, got %s", node.Value)
	}
	if node := doc.Lookup("spec", "replicas"); node.Value != "3" {
		t.Errorf("Expected original replicas untouched, got %s", node.Value)
	}
}

func TestRewriteConfigMap(t *testing.T) {
	content := `apiVersion: v1
kind: ConfigMap
metadata:
  name: app-config
data:
  LOG_LEVEL: debug
`
	result := rewriteToMap(t, "config.yaml", content, "config")
	if result["data"] != `{{ .Values.config.data | default (dict) | toYaml | nindent 2 }}` {
		t.Errorf("Unexpected data placeholder: %v", result["data"])
	}
}

func TestRewriteSecret(t *testing.T) {
	content := `apiVersion: v1
kind: Secret
metadata:
  name: app-secret
data:
  password: cGFzc3dvcmQ=
`
	result := rewriteToMap(t, "secret.yaml", content, "secret")
	if result["data"] != `{{ .Values.secret.data | default (dict) | toYaml | nindent 2 }}` {
		t.Errorf("Unexpected data placeholder: %v", result["data"])
	}
}

func TestRewriteService(t *testing.T) {
	content := `apiVersion: v1
kind: Service
metadata:
  name: web
spec:
  type: NodePort
  ports:
    - port: 80
  selector:
    app: web
`
	result := rewriteToMap(t, "svc.yaml", content, "svc")
	spec := result["spec"].(map[string]any)
	if spec["type"] != `{{ .Values.svc.service.type | default "NodePort" }}` {
		t.Errorf("Unexpected type placeholder: %v", spec["type"])
	}
	if spec["ports"] != `{{ .Values.svc.service.ports | default (list) | toYaml | nindent 4 }}` {
		t.Errorf("Unexpected ports placeholder: %v", spec["ports"])
	}
	selector := spec["selector"].(map[string]any)
	if selector["app"] != "web" {
		t.Errorf("Expected selector to pass through, got %v", selector)
	}
}

func TestRewriteDataIgnoredForOtherKinds(t *testing.T) {
	content := `apiVersion: v1
kind: Pod
metadata:
  name: p
data:
  key: value
`
	result := rewriteToMap(t, "pod.yaml", content, "pod")
	data := result["data"].(map[string]any)
	if data["key"] != "value" {
		t.Errorf("Expected data to pass through for a Pod, got %v", result["data"])
	}
}

func TestRewrittenTemplateStaysValidYaml(t *testing.T) {
	doc := parseOne(t, "web.yaml", deploymentFixture)
	rewritten, err := RewriteDocument(doc, "web")
	if err != nil {
		t.Fatalf("Failed to rewrite: %s", err)
	}
	content, err := yaml.Marshal(rewritten)
	if err != nil {
		t.Fatalf(unmarshalError, err)
	}
	roundTrip := map[string]any{}
	if err := yaml.Unmarshal(content, &roundTrip); err != nil {
		t.Errorf("Expected serialized template to parse, got %s", err)
	}
}
