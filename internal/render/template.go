package render

// Placeholders substituted into pageTemplate.
const (
	tagAccessToken = "accessToken"
	tagStartTime   = "startTime"
	tagStopTime    = "stopTime"
	tagData        = "data"
	tagVisualType  = "visualType"
)

const (
	startTag = "{{"
	endTag   = "}}"
)

// pageTemplate is a standalone CesiumJS page that animates the embedded
// FeatureCollections over the generated timeline.
const pageTemplate = `
<!doctype html>
<html lang="en">
  <head>
    <meta charset="UTF-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <title>Cesium Time-Series Heatmap Visualization</title>
    <script src="https://cesium.com/downloads/cesiumjs/releases/1.95/Build/Cesium/Cesium.js"></script>
    <link href="https://cesium.com/downloads/cesiumjs/releases/1.95/Build/Cesium/Widgets/widgets.css" rel="stylesheet" />
    <style>#cesiumContainer { width: 100%; height: 100%; }</style>
  </head>
  <body>
    <div id="cesiumContainer"></div>
    <script>
      Cesium.Ion.defaultAccessToken = '{{accessToken}}';
      const viewer = new Cesium.Viewer('cesiumContainer');

      function interpolateColor(color1, color2, factor) {
        const result = new Cesium.Color();
        result.red = color1.red + factor * (color2.red - color1.red);
        result.green = color1.green + factor * (color2.green - color1.green);
        result.blue = color1.blue + factor * (color2.blue - color1.blue);
        result.alpha = '{{visualType}}' == 'size' ? 0.2 : color1.alpha + factor * (color2.alpha - color1.alpha);
        return result;
      }

      function getColor(value, min, max) {
        const factor = (value - min) / (max - min);
        return interpolateColor(Cesium.Color.BLUE, Cesium.Color.RED, factor);
      }

      function getPixelSize(value, min, max) {
        const factor = (value - min) / (max - min);
        return 100 * (1 + factor);
      }

      function processTimeSeriesData(geoJsonData) {
        const timeSeriesMap = new Map();
        let minValue = Infinity;
        let maxValue = -Infinity;

        geoJsonData.features.forEach((feature) => {
          const id = feature.properties.id;
          const time = Cesium.JulianDate.fromIso8601(feature.properties.time);
          const value = feature.properties.value;
          const coordinates = feature.geometry.coordinates;

          if (!timeSeriesMap.has(id)) {
            timeSeriesMap.set(id, []);
          }
          timeSeriesMap.get(id).push({ time, value, coordinates });

          minValue = Math.min(minValue, value);
          maxValue = Math.max(maxValue, value);
        });

        return { timeSeriesMap, minValue, maxValue };
      }

      function createTimeSeriesEntities(timeSeriesData, startTime, stopTime) {
        const dataSource = new Cesium.CustomDataSource('AgentTorch Simulation');

        for (const [id, timeSeries] of timeSeriesData.timeSeriesMap) {
          const entity = new Cesium.Entity({
            id: id,
            availability: new Cesium.TimeIntervalCollection([
              new Cesium.TimeInterval({ start: startTime, stop: stopTime }),
            ]),
            position: new Cesium.SampledPositionProperty(),
            point: {
              pixelSize: '{{visualType}}' == 'size' ? new Cesium.SampledProperty(Number) : 10,
              color: new Cesium.SampledProperty(Cesium.Color),
            },
            properties: {
              value: new Cesium.SampledProperty(Number),
            },
          });

          timeSeries.forEach(({ time, value, coordinates }) => {
            const position = Cesium.Cartesian3.fromDegrees(coordinates[0], coordinates[1]);
            entity.position.addSample(time, position);
            entity.properties.value.addSample(time, value);
            entity.point.color.addSample(time, getColor(value, timeSeriesData.minValue, timeSeriesData.maxValue));
            if ('{{visualType}}' == 'size') {
              entity.point.pixelSize.addSample(time, getPixelSize(value, timeSeriesData.minValue, timeSeriesData.maxValue));
            }
          });

          dataSource.entities.add(entity);
        }

        return dataSource;
      }

      const geoJsons = {{data}};
      const start = Cesium.JulianDate.fromIso8601('{{startTime}}');
      const stop = Cesium.JulianDate.fromIso8601('{{stopTime}}');

      viewer.clock.startTime = start.clone();
      viewer.clock.stopTime = stop.clone();
      viewer.clock.currentTime = start.clone();
      viewer.clock.clockRange = Cesium.ClockRange.LOOP_STOP;
      viewer.clock.multiplier = 3600; // 1 hour per second

      viewer.timeline.zoomTo(start, stop);

      for (const geoJsonData of geoJsons) {
        const timeSeriesData = processTimeSeriesData(geoJsonData);
        const dataSource = createTimeSeriesEntities(timeSeriesData, start, stop);
        viewer.dataSources.add(dataSource);
        viewer.zoomTo(dataSource);
      }
    </script>
  </body>
</html>
`
