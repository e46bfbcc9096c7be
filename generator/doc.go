/*
The generator package turns parsed kubernetes manifests into a helm chart.

It is the core of kube2helm. For each validated document it extracts the
parameterizable values (names, replicas, images, resources, config data,
service ports...) into the values map, and rewrites the same fields in the
document as helm placeholder expressions that default to the original value.
The rewritten documents become the chart templates, keyed by a resource key
derived from the source filename.

generator.Convert() loads the manifests, calls Generate() to build the
HelmChart object, and writes or prints the chart. If you want another write
behavior, call Generate() yourself: it does not touch the disk.
*/
package generator
